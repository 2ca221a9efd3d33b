package domain

import "errors"

// Classes de erro do pipeline de revisão de orçamento.
// Os integradores e repositórios envolvem seus erros com uma delas via %w.
var (
	// Conta sem ID, credencial ausente ou expirada
	ErrConfiguration = errors.New("configuration error")
	// Resposta não-2xx, timeout ou falha de transporte na plataforma de anúncios
	ErrPlatformAPI = errors.New("platform api error")
	ErrCalculation = errors.New("calculation error")
	ErrPersistence = errors.New("persistence error")

	ErrClientNotFound = errors.New("client not found")
)
