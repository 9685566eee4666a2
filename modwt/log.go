package modwt

import "github.com/charmbracelet/log"

var logger = log.NewWithOptions(log.Default().StandardLog().Writer(), log.Options{Prefix: "modwt"})
