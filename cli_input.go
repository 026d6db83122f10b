package main

import "github.com/alecthomas/kong"

// CLIInput stores all configuration flags and arguments that can be passed to the application
type CLIInput struct {
	Version kong.VersionFlag `short:"v" name:"version" help:"Get version number."`
	// ConfigFile points to the YAML file holding the viewer configuration. Environment variables take precedence over it
	ConfigFile string `env:"CONFIG_FILE" short:"c" name:"config" help:"YAML file holding the viewer configuration. Environment variables take precedence over it." type:"path"`
	// Port defines the port number in which the webserver listens for requests
	Port int `env:"PORT" short:"p" default:"3000" name:"port" help:"Port number in which the webserver listens for requests"`
	// DBPath is where the database of users, saved searches and pages is stored
	DBPath string `env:"DB_PATH" default:"viewer.db" name:"db-path" help:"Path of the database of users, saved searches and pages"`
	// PagesIndexPath is where the search index of the editorial pages is stored
	PagesIndexPath string `env:"PAGES_INDEX_PATH" default:"pages.bleve" name:"pages-index-path" help:"Path of the search index of the editorial pages"`
	// JwtSecret stores the string to use to sign JWTs
	JwtSecret string `env:"JWT_SECRET" short:"s" name:"jwt-secret" help:"String to use to sign JWTs"`
	// MinPasswordLength is the minimum length acceptable for passwords
	MinPasswordLength int `env:"MIN_PASSWORD_LENGTH" default:"5" name:"min-password-length" help:"Minimum length acceptable for passwords"`
	// SessionTimeout specifies the maximum time a user session may last in hours
	SessionTimeout float64 `env:"SESSION_TIMEOUT" default:"24" name:"session-timeout" help:"Maximum time a user session may last in hours"`
	// BrowserSessionTimeout is the time of inactivity after which the search and navigation state of a browser is dropped, in minutes
	BrowserSessionTimeout float64 `env:"BROWSER_SESSION_TIMEOUT" default:"30" name:"browser-session-timeout" help:"Minutes of inactivity after which the search and navigation state of a browser is dropped"`
	// Languages lists the languages the interface is offered in. The first one is the default
	Languages []string `env:"LANGUAGES" default:"en,de" name:"languages" help:"Languages the interface is offered in. The first one is the default"`
	// LogEnv selects the log format, prod or dev
	LogEnv string `env:"LOG_ENV" default:"prod" enum:"prod,dev,local" name:"log-env" help:"Log format, prod (JSON) or dev (console)"`
	// LogLevel overrides the default log level of the environment
	LogLevel string `env:"LOG_LEVEL" name:"log-level" help:"Overrides the default log level of the environment"`
}
