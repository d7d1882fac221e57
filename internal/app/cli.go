package app

import "github.com/spf13/pflag"

// RegisterFlags registers all CLI flags on the given FlagSet
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: http or stdio")
	flags.StringP("host", "H", "", "Host for HTTP transport")
	flags.IntP("port", "p", 0, "Port for HTTP transport")
	flags.StringP("log-level", "l", "", "Log level: debug, info, warn or error")

	flags.StringP("backend-source", "s", "", "Document backend: http or file")
	flags.StringP("backend-base-url", "b", "", "Base URL of the document backend API")
	flags.StringP("backend-file", "f", "", "YAML or JSON fixture used as the backend")
	flags.Duration("backend-timeout", 0, "Timeout for backend requests")
	flags.Int("backend-content-cache-size", 0, "Number of document contents kept in memory (0 disables)")

	flags.Duration("library-refresh-interval", 0, "Reload documents periodically (0 loads once)")
	flags.Int("library-max-search-results", 0, "Maximum name search results")
}
