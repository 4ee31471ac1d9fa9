package installer

// envFile mirrors the variables the wizard collects. MarshalEnv skips zero
// fields, so only answered questions end up in the .env file. The enable
// flags are strings because an explicit "false" must survive marshalling.
type envFile struct {
	Generator   string `env:"SANI_GENERATOR"`
	DatasetPath string `env:"SANI_DATASET_PATH"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL"`
	OllamaModel   string `env:"OLLAMA_MODEL"`

	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL"`

	EnableHTTP     string `env:"ENABLE_HTTP"`
	EnableTelegram string `env:"ENABLE_TELEGRAM"`

	TelegramToken   string `env:"TELEGRAM_TOKEN"`
	TelegramOwnerID string `env:"TELEGRAM_OWNER_ID"`

	Debug string `env:"SANI_DEBUG"`
}

type InstallState struct {
	Env envFile
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
