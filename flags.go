package ipynbd

import (
	"time"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/pflag"
)

type AllFlags struct {
	ExportOptions
	PDFOptions
	logger.Flags
}

var Flags AllFlags = AllFlags{
	ExportOptions: ExportOptions{},
	PDFOptions: PDFOptions{
		Format:   "A4",
		CacheTTL: 24 * time.Hour, // Default 24 hour cache
	},
	Flags: logger.Flags{
		Level:        "info",
		LevelCount:   0,
		JsonLogs:     false,
		ReportCaller: false,
		LogToStderr:  true,
	},
}

// BindAllFlags adds logging and export flags to a pflag set (for Cobra)
func BindAllFlags(flags *pflag.FlagSet) AllFlags {
	flags.CountVarP(&Flags.Flags.LevelCount, "loglevel", "v", "Increase logging level")
	flags.StringVar(&Flags.Flags.Level, "log-level", "info", "Set the default log level")
	flags.BoolVar(&Flags.Flags.JsonLogs, "json-logs", false, "Print logs in json format to stderr")

	flags.BoolVar(&Flags.Flags.ReportCaller, "report-caller", false, "Report log caller info")
	flags.BoolVar(&Flags.Flags.LogToStderr, "log-to-stderr", true, "Log to stderr instead of stdout")

	BindPFlags(flags, &Flags.ExportOptions)
	BindPDFPFlags(flags, &Flags.PDFOptions)

	return Flags
}

func (a AllFlags) UseFlags() {
	logger.Configure(a.Flags)
}
