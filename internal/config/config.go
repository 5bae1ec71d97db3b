package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	GeminiAPIKey       string        `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiBaseURL      string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel        string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	CompletionTimeout  time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"30s"`
	CompletionCacheTTL time.Duration `env:"COMPLETION_CACHE_TTL" envDefault:"10m"`

	ProjectsPath       string `env:"PROJECTS_PATH" envDefault:"./data/repos.json"`
	ExperiencePath     string `env:"EXPERIENCE_PATH" envDefault:"./data/experience.json"`
	ContentDatabaseURL string `env:"CONTENT_DATABASE_URL"`

	FeaturedProjects []string `env:"FEATURED_PROJECTS" envSeparator:"," envDefault:"FerroTeX,UE5-MCP,IPFS,dart_lz4"`
	MCPProjects      []string `env:"MCP_PROJECTS" envSeparator:"," envDefault:"ultramac-mcp,blender-mcp,godot-mcp,mcp-server-gemini-image-generator"`

	OwnerName    string   `env:"OWNER_NAME" envDefault:"Jose Eduardo Rojas Jimenez"`
	OwnerHandle  string   `env:"OWNER_HANDLE" envDefault:"jxoesneon"`
	OwnerRole    string   `env:"OWNER_ROLE" envDefault:"Decentralized Systems Engineer, AI Specialist, Creative Technologist."`
	OwnerSkills  []string `env:"OWNER_SKILLS" envSeparator:"," envDefault:"Decentralized AI,MCP (Model Context Protocol),IPFS,Dart/Flutter,Unreal Engine 5"`
	ContactEmail string   `env:"CONTACT_EMAIL" envDefault:"concept@jxoesneon.com"`

	SessionIdleTTL     time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SessionSweepPeriod time.Duration `env:"SESSION_SWEEP_PERIOD" envDefault:"5m"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ContentSyncConfig es la configuración de cmd/content_sync, que no necesita la API key.
type ContentSyncConfig struct {
	DatabaseURL    string `env:"CONTENT_DATABASE_URL,required,notEmpty"`
	MigrationsPath string `env:"CONTENT_MIGRATIONS_PATH" envDefault:"./migrations/content"`
	ProjectsPath   string `env:"PROJECTS_PATH" envDefault:"./data/repos.json"`
	ExperiencePath string `env:"EXPERIENCE_PATH" envDefault:"./data/experience.json"`
}

func LoadContentSyncConfig() (*ContentSyncConfig, error) {
	var cfg ContentSyncConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
