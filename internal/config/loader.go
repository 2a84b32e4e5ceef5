package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the agent service.
type Config struct {
	HTTPPort    int
	SQLiteDSN   string
	Timezone    string
	DayStart    int
	DayEnd      int
	ProposalTTL time.Duration

	LLMBaseURL           string
	LLMAPIKey            string
	LLMModel             string
	LLMTemperature       float64
	LLMRequestsPerMinute int
	LLMTimeout           time.Duration
}

// Load parses configuration values from the current process environment.
//
// Optional fields fall back to sensible defaults; required values and
// malformed entries are aggregated into a single error so operators see every
// problem at once.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:             8080,
		SQLiteDSN:            "file:agent.db?_foreign_keys=on",
		Timezone:             "UTC",
		DayStart:             9,
		DayEnd:               17,
		ProposalTTL:          10 * time.Minute,
		LLMBaseURL:           "https://api.openai.com/v1",
		LLMModel:             "gpt-4o-mini",
		LLMTemperature:       0.1,
		LLMRequestsPerMinute: 20,
		LLMTimeout:           30 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("AGENT_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "AGENT_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("AGENT_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if tz := strings.TrimSpace(os.Getenv("AGENT_TIMEZONE")); tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			invalid = append(invalid, "AGENT_TIMEZONE")
		} else {
			cfg.Timezone = tz
		}
	}

	if startValue := strings.TrimSpace(os.Getenv("AGENT_DAY_START_HOUR")); startValue != "" {
		hour, err := strconv.Atoi(startValue)
		if err != nil || hour < 0 || hour > 23 {
			invalid = append(invalid, "AGENT_DAY_START_HOUR")
		} else {
			cfg.DayStart = hour
		}
	}

	if endValue := strings.TrimSpace(os.Getenv("AGENT_DAY_END_HOUR")); endValue != "" {
		hour, err := strconv.Atoi(endValue)
		if err != nil || hour < 1 || hour > 24 {
			invalid = append(invalid, "AGENT_DAY_END_HOUR")
		} else {
			cfg.DayEnd = hour
		}
	}
	if cfg.DayStart >= cfg.DayEnd {
		invalid = append(invalid, "AGENT_DAY_START_HOUR")
	}

	if ttlValue := strings.TrimSpace(os.Getenv("AGENT_PROPOSAL_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "AGENT_PROPOSAL_TTL")
		} else {
			cfg.ProposalTTL = ttl
		}
	}

	if baseURL := strings.TrimSpace(os.Getenv("AGENT_LLM_BASE_URL")); baseURL != "" {
		cfg.LLMBaseURL = baseURL
	}

	if apiKey := strings.TrimSpace(os.Getenv("AGENT_LLM_API_KEY")); apiKey == "" {
		missing = append(missing, "AGENT_LLM_API_KEY")
	} else {
		cfg.LLMAPIKey = apiKey
	}

	if model := strings.TrimSpace(os.Getenv("AGENT_LLM_MODEL")); model != "" {
		cfg.LLMModel = model
	}

	if tempValue := strings.TrimSpace(os.Getenv("AGENT_LLM_TEMPERATURE")); tempValue != "" {
		temp, err := strconv.ParseFloat(tempValue, 64)
		if err != nil || temp < 0 || temp > 2 {
			invalid = append(invalid, "AGENT_LLM_TEMPERATURE")
		} else {
			cfg.LLMTemperature = temp
		}
	}

	if rpmValue := strings.TrimSpace(os.Getenv("AGENT_LLM_REQUESTS_PER_MINUTE")); rpmValue != "" {
		rpm, err := strconv.Atoi(rpmValue)
		if err != nil || rpm <= 0 {
			invalid = append(invalid, "AGENT_LLM_REQUESTS_PER_MINUTE")
		} else {
			cfg.LLMRequestsPerMinute = rpm
		}
	}

	if timeoutValue := strings.TrimSpace(os.Getenv("AGENT_LLM_TIMEOUT")); timeoutValue != "" {
		timeout, err := time.ParseDuration(timeoutValue)
		if err != nil || timeout <= 0 {
			invalid = append(invalid, "AGENT_LLM_TIMEOUT")
		} else {
			cfg.LLMTimeout = timeout
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
