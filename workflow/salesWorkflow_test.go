package workflow

import "testing"

func TestChannelForOrderType(t *testing.T) {
	cases := []struct {
		orderType string
		want      string
	}{
		{"DINE_IN", "Dine In"},
		{"TAKEAWAY", "Take Away"},
		{"CATERING", "Catering"},
		{"DELIVERY", "Delivery"},
		// Unknown order types pass through so new POS types are not dropped.
		{"GRABFOOD", "GRABFOOD"},
		{"", ""},
	}

	for _, c := range cases {
		if got := channelForOrderType(c.orderType); got != c.want {
			t.Errorf("channelForOrderType(%q) = %q, want %q", c.orderType, got, c.want)
		}
	}
}
