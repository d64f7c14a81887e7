package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"deal_radar/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "OAuth tokens",
			input:  []byte(`{"access_token":"v^1.1#i^1#p^1","refresh_token":"v^1.1#r^1","expires_in":7200}`),
			output: []byte(`{"access_token":"[MASKED]","refresh_token":"[MASKED]","expires_in":7200}`),
		},
		{
			name:   "Bearer header",
			input:  []byte("GET /buy/browse/v1/item/v1%7C1%7C0 HTTP/1.1\r\nAuthorization: Bearer secret-token\r\n"),
			output: []byte("GET /buy/browse/v1/item/v1%7C1%7C0 HTTP/1.1\r\nAuthorization: Bearer [MASKED]\r\n"),
		},
		{
			name:   "Seller username and email",
			input:  []byte(`{"seller": {"username": "cards_4_u", "email": "seller@example.com"}, "feedbackScore": 120}`),
			output: []byte(`{"seller": {"username": "[MASKED]", "email": "[MASKED]"}, "feedbackScore": 120}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
