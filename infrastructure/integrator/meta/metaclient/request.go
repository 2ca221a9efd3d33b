package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/budget-pacing-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/budget-pacing-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type pagedResponse[T any] struct {
	Data   []T               `json:"data"`
	Paging metadomain.Paging `json:"paging"`
}

func (c *MetaClient) buildURL(path string, params url.Values, token string) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("access_token", token)
	return fmt.Sprintf("%s/%s?%s", c.Cfg.Meta.URL, path, params.Encode())
}

func (c *MetaClient) pageLimit() string {
	if c.Cfg.Platforms.PageLimit > 0 {
		return strconv.Itoa(c.Cfg.Platforms.PageLimit)
	}
	return "200"
}

// get executa um GET com timeout próprio e devolve o corpo de uma resposta 2xx
func (c *MetaClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	if timeout := c.Cfg.Platforms.RequestTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao criar a requisição: %w", domain.ErrPlatformAPI, err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("Erro ao fazer a requisição para a Graph API")
		return nil, fmt.Errorf("%w: meta: %w", domain.ErrPlatformAPI, err)
	}
	defer resp.Body.Close()

	return HandleResponse(resp)
}

// HandleResponse classifica respostas de erro: token inválido é erro de configuração,
// o restante é falha da plataforma
func HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler resposta: %w", domain.ErrPlatformAPI, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	var errorResp metadomain.ErrorResponse
	if parseErr := json.Unmarshal(body, &errorResp); parseErr == nil && errorResp.Error.Code != 0 {
		if errorResp.IsTokenExpired() {
			logrus.Warnf("Token expirado ou inválido na API Meta. Código: %d, Subcódigo: %d",
				errorResp.Error.Code, errorResp.Error.ErrorSubcode)
			return nil, fmt.Errorf("%w: meta: token expirado ou inválido: %s", domain.ErrConfiguration, errorResp.String())
		}
		return nil, fmt.Errorf("%w: meta: status %d: %s", domain.ErrPlatformAPI, resp.StatusCode, errorResp.String())
	}

	return nil, fmt.Errorf("%w: meta: status %d: %s", domain.ErrPlatformAPI, resp.StatusCode, truncate(body, 512))
}

// getPaged segue paging.next até o fim. Resposta sem "data" conta como lista vazia.
func getPaged[T any](ctx context.Context, c *MetaClient, firstURL string) ([]T, error) {
	items := make([]T, 0)
	next := firstURL

	for page := 0; next != "" && page < maxPages; page++ {
		body, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}

		var response pagedResponse[T]
		if err := json.Unmarshal(body, &response); err != nil {
			logrus.WithError(err).Error("Erro ao decodificar JSON")
			return nil, fmt.Errorf("%w: meta: resposta inválida: %w", domain.ErrPlatformAPI, err)
		}

		items = append(items, response.Data...)
		next = response.Paging.Next
	}

	if next != "" {
		return nil, errors.Join(domain.ErrPlatformAPI, fmt.Errorf("meta: limite de %d páginas atingido", maxPages))
	}

	return items, nil
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
