package command

import "testing"

func TestResolveMessageRef(t *testing.T) {
	const fallback = "111"

	tests := []struct {
		name        string
		ref         string
		wantChannel string
		wantMessage string
		wantErr     bool
	}{
		{
			name:        "message link",
			ref:         "https://discord.com/channels/100/200/300",
			wantChannel: "200",
			wantMessage: "300",
		},
		{
			name:        "canary link with trailing slash",
			ref:         "https://canary.discord.com/channels/100/200/300/",
			wantChannel: "200",
			wantMessage: "300",
		},
		{
			name:        "channel-message pair",
			ref:         "200-300",
			wantChannel: "200",
			wantMessage: "300",
		},
		{
			name:        "bare ID falls back to invoking channel",
			ref:         "300",
			wantChannel: fallback,
			wantMessage: "300",
		},
		{
			name:        "whitespace trimmed",
			ref:         "  300 ",
			wantChannel: fallback,
			wantMessage: "300",
		},
		{name: "empty", ref: "", wantErr: true},
		{name: "blank", ref: "   ", wantErr: true},
		{name: "truncated link", ref: "https://discord.com/channels/100/200", wantErr: true},
		{name: "dangling dash", ref: "200-", wantErr: true},
		{name: "leading dash", ref: "-300", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, msg, err := resolveMessageRef(tt.ref, fallback)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolveMessageRef(%q) = %q, %q, want error", tt.ref, ch, msg)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveMessageRef(%q) error: %v", tt.ref, err)
			}
			if ch != tt.wantChannel || msg != tt.wantMessage {
				t.Errorf("resolveMessageRef(%q) = %q, %q, want %q, %q", tt.ref, ch, msg, tt.wantChannel, tt.wantMessage)
			}
		})
	}
}
