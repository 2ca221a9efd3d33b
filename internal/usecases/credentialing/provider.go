// Package credentialing entrega o token de acesso vigente de cada plataforma.
// A renovação dos tokens é feita por outro serviço; aqui apenas lemos e validamos.
package credentialing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-pacing-api/infrastructure/repository"
	"github.com/vfg2006/budget-pacing-api/internal/config"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

const defaultCacheTTL = time.Minute

type Provider interface {
	// Credential retorna um token válido ou um erro que envolve domain.ErrConfiguration
	Credential(ctx context.Context, platform domain.Platform) (*domain.Credential, error)
}

type cachedCredential struct {
	credential *domain.Credential
	loadedAt   time.Time
}

type provider struct {
	repo      repository.CredentialRepository
	fallbacks map[domain.Platform]string
	cacheTTL  time.Duration
	now       func() time.Time

	mu    sync.Mutex
	cache map[domain.Platform]cachedCredential
}

// NewProvider usa os tokens das variáveis de ambiente apenas quando a tabela não tem registro
func NewProvider(repo repository.CredentialRepository, cfg *config.Config) Provider {
	fallbacks := make(map[domain.Platform]string)
	if cfg != nil {
		fallbacks[domain.PlatformMeta] = cfg.Meta.AccessToken
		fallbacks[domain.PlatformGoogle] = cfg.Google.AccessToken
	}

	return &provider{
		repo:      repo,
		fallbacks: fallbacks,
		cacheTTL:  defaultCacheTTL,
		now:       time.Now,
		cache:     make(map[domain.Platform]cachedCredential),
	}
}

func (p *provider) Credential(ctx context.Context, platform domain.Platform) (*domain.Credential, error) {
	now := p.now()

	credential, err := p.load(ctx, platform, now)
	if err != nil {
		return nil, err
	}

	if credential == nil || credential.AccessToken == "" {
		return nil, fmt.Errorf("%w: credencial da plataforma %s não encontrada", domain.ErrConfiguration, platform)
	}

	if credential.IsExpired(now) {
		logrus.WithFields(logrus.Fields{
			"platform":   platform,
			"expires_at": credential.ExpiresAt,
		}).Warn("Credencial expirada")
		return nil, fmt.Errorf("%w: credencial da plataforma %s expirada em %s", domain.ErrConfiguration, platform, credential.ExpiresAt.Format(time.RFC3339))
	}

	return credential, nil
}

func (p *provider) load(ctx context.Context, platform domain.Platform, now time.Time) (*domain.Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.cache[platform]; ok && now.Sub(cached.loadedAt) < p.cacheTTL {
		return cached.credential, nil
	}

	credential, err := p.repo.GetByPlatform(ctx, platform)
	if err != nil {
		return nil, err
	}

	if credential == nil {
		if token := p.fallbacks[platform]; token != "" {
			credential = &domain.Credential{Platform: platform, AccessToken: token}
		}
	}

	p.cache[platform] = cachedCredential{credential: credential, loadedAt: now}
	return credential, nil
}
