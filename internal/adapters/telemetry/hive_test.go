package telemetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rulegen/internal/adapters/telemetry"
)

func TestHiveRowFormatter(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		want   string
	}{
		{name: "single field", fields: []string{"a"}, want: "a\n"},
		{name: "separator", fields: []string{"a", "b"}, want: "a\x01b\n"},
		{name: "escapes line breaks", fields: []string{"x\ny\rz"}, want: `x\ny\rz` + "\n"},
		{name: "escapes separator", fields: []string{"a\x01b", "c"}, want: `a\001b` + "\x01c\n"},
		{name: "escapes backslash first", fields: []string{`C:\n`}, want: `C:\\n` + "\n"},
		{name: "empty", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := telemetry.NewHiveRowFormatter()
			for _, field := range tt.fields {
				f.AppendString(field)
			}
			assert.Equal(t, tt.want, f.Build())
		})
	}
}
