package s3_test

import (
	"parkflow/infras/s3"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		name   string
		domain string
		url    string
		want   string
	}{
		{"inside domain", "https://cdn.parkflow.app", "https://cdn.parkflow.app/proof-documents/a.pdf", "proof-documents/a.pdf"},
		{"domain with trailing slash", "https://cdn.parkflow.app/", "https://cdn.parkflow.app/receipts/b.pdf", "receipts/b.pdf"},
		{"foreign url", "https://cdn.parkflow.app", "https://example.com/a.pdf", ""},
		{"no domain configured", "", "https://cdn.parkflow.app/a.pdf", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s3.ObjectKey(tt.domain, tt.url))
		})
	}
}
