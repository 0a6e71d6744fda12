package dto

import "testing"

func TestParseWebhookPayload(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind PayloadKind
	}{
		{
			name: "payload link hợp lệ",
			raw:  `{"data":{"id":"evt_123","attributes":{"data":{"type":"link","id":"plink_abc"}}}}`,
			kind: PayloadLink,
		},
		{
			name: "type khác link",
			raw:  `{"data":{"id":"evt_124","attributes":{"data":{"type":"charge","id":"ch_abc"}}}}`,
			kind: PayloadUnhandled,
		},
		{
			name: "thiếu type",
			raw:  `{"data":{"id":"evt_125","attributes":{"data":{"id":"plink_abc"}}}}`,
			kind: PayloadUnrecognized,
		},
		{
			name: "thiếu id",
			raw:  `{"data":{"id":"evt_126","attributes":{"data":{"type":"link"}}}}`,
			kind: PayloadUnrecognized,
		},
		{
			name: "json hỏng",
			raw:  `{"data":{`,
			kind: PayloadUnrecognized,
		},
		{
			name: "json hợp lệ nhưng sai shape",
			raw:  `{"event":"payment.paid","link_id":"plink_abc"}`,
			kind: PayloadUnrecognized,
		},
		{
			name: "rỗng",
			raw:  ``,
			kind: PayloadUnrecognized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, kind := ParseWebhookPayload([]byte(tt.raw))
			if kind != tt.kind {
				t.Errorf("kind = %d, mong đợi %d", kind, tt.kind)
			}
		})
	}
}

func TestWebhookPayloadAccessors(t *testing.T) {
	raw := `{"data":{"id":"evt_999","attributes":{"data":{"type":"link","id":"plink_xyz"}}}}`
	payload, kind := ParseWebhookPayload([]byte(raw))
	if kind != PayloadLink {
		t.Fatalf("kind = %d, mong đợi PayloadLink", kind)
	}
	if payload.PaymentLinkID() != "plink_xyz" {
		t.Errorf("PaymentLinkID = %q", payload.PaymentLinkID())
	}
	if payload.GatewayEventID() != "evt_999" {
		t.Errorf("GatewayEventID = %q", payload.GatewayEventID())
	}
}
