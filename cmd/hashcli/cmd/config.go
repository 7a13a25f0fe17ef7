package cmd

import (
	"massnet.org/hashcore/logging"
	"massnet.org/hashcore/worker"
)

const (
	defaultLogDir      = "hashcli-logs"
	defaultLogFilename = "hashcli"
	defaultLogLevel    = "info"
	defaultConfigName  = ".hashcli"
	envPrefix          = "HASHCLI"
)

type Config struct {
	LogDir   string `json:"log_dir"`
	LogLevel string `json:"log_level"`
	Workers  int    `json:"workers"`
}

// initConfig reads in config file and ENV variables if set.
func (a *app) initConfig() {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath("./")
		a.v.SetConfigName(defaultConfigName)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := a.v.ReadInConfig(); err == nil {
		a.usingConfigFile = true
	}

	// Load config to memory.
	a.config.LogDir = a.v.GetString("log_dir")
	if a.config.LogDir == "" {
		a.config.LogDir = defaultLogDir
	}
	a.config.LogLevel = a.v.GetString("log_level")
	if a.config.LogLevel == "" {
		a.config.LogLevel = defaultLogLevel
	}
	a.config.Workers = a.v.GetInt("workers")
	if a.config.Workers <= 0 {
		a.config.Workers = worker.DefaultSize
	}
}

// initLogger initializes logging module by config.
func (a *app) initLogger() {
	logging.Init(a.config.LogDir, defaultLogFilename, a.config.LogLevel, 1, true)
}

// logBasicInfo logs the basic info on initializing.
func (a *app) logBasicInfo() {
	logging.VPrint(logging.INFO, "using config file", logging.LogFormat{
		"file":    a.usingConfigFile,
		"workers": a.config.Workers,
	})
}
