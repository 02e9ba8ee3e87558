package build

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint identifies the content of one generated file.
type Fingerprint struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

func Sum(data []byte) Fingerprint {
	h := sha256.Sum256(data)
	return Fingerprint{
		Hash: hex.EncodeToString(h[:]),
		Size: int64(len(data)),
	}
}

func (f Fingerprint) IsZero() bool {
	return f.Hash == ""
}
