package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera os IDs curtos usados nos snapshots
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 16)
}
