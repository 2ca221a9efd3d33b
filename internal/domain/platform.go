package domain

import (
	"fmt"
	"strings"
	"time"
)

type Platform string

const (
	PlatformMeta   Platform = "meta"
	PlatformGoogle Platform = "google"
)

// Platforms lista as plataformas suportadas, na ordem em que são revisadas
var Platforms = []Platform{PlatformMeta, PlatformGoogle}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PlatformMeta, PlatformGoogle:
		return p, nil
	}

	return "", fmt.Errorf("plataforma inválida: %q", s)
}

func (p Platform) String() string {
	return string(p)
}

// Credential é o token de acesso de uma plataforma de anúncios
type Credential struct {
	Platform    Platform
	AccessToken string
	ExpiresAt   *time.Time
}

// IsExpired indica se o token já expirou em relação ao instante informado
func (c *Credential) IsExpired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}

	return !now.Before(*c.ExpiresAt)
}

// Period é um intervalo de dias fechado [Start, End]
type Period struct {
	Start time.Time
	End   time.Time
}
