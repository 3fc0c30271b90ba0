package app

import (
	"strings"
	"time"

	"github.com/simlrfm/simlr-backend/internal/pkg/envutil"
	"github.com/simlrfm/simlr-backend/internal/pkg/logger"
	"github.com/simlrfm/simlr-backend/internal/pkg/rank"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	ReasonMinLen int
	ReasonMaxLen int
	Rank         rank.Config

	CORSOrigins []string
	Port        string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := envutil.GetEnvAsInt("ACCESS_TOKEN_TTL", 900, log)
	refreshTokenTTLSeconds := envutil.GetEnvAsInt("REFRESH_TOKEN_TTL", 604800, log)

	reasonMinLen := envutil.GetEnvAsInt("SIMLR_REASON_MIN_LEN", 140, log)
	reasonMaxLen := envutil.GetEnvAsInt("SIMLR_REASON_MAX_LEN", 280, log)

	rankCfg := rank.Config{
		Epoch:   int64(envutil.GetEnvAsInt("RANK_EPOCH", int(rank.DefaultEpoch), log)),
		Divisor: envutil.GetEnvAsFloat("RANK_DIVISOR", rank.DefaultDivisor, log),
	}

	var corsOrigins []string
	if raw := envutil.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		ReasonMinLen:    reasonMinLen,
		ReasonMaxLen:    reasonMaxLen,
		Rank:            rankCfg,
		CORSOrigins:     corsOrigins,
		Port:            envutil.GetEnv("PORT", "8080", log),
	}
}
