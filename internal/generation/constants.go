package generation

import "time"

const (
	// ProviderTimeout bounds a single remote completion call.
	ProviderTimeout = 60 * time.Second

	// MaxCompletionTokens caps code generation responses.
	MaxCompletionTokens = 2000

	// MaxAnalysisTokens caps code review responses.
	MaxAnalysisTokens = 1500

	// MaxProjectTokens caps whole-project generation responses.
	MaxProjectTokens = 3000

	// CodeTemperature keeps generation output focused.
	CodeTemperature = 0.3
)
