package logging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "prod default", env: "prod", want: zapcore.InfoLevel},
		{name: "dev default", env: "dev", want: zapcore.DebugLevel},
		{name: "local override", env: "local", level: "warn", want: zapcore.WarnLevel},
		{name: "unknown env", env: "staging", wantErr: true},
		{name: "bad level", env: "prod", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.env, tt.level)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !l.Core().Enabled(tt.want) {
				t.Errorf("level %v not enabled", tt.want)
			}
			if tt.want > zapcore.DebugLevel && l.Core().Enabled(tt.want-1) {
				t.Errorf("level %v should be disabled", tt.want-1)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	fallback := zap.NewExample()
	scoped := zap.NewExample().With(zap.String("tool", "search"))

	tests := []struct {
		name     string
		ctx      context.Context
		fallback *zap.Logger
		want     *zap.Logger
	}{
		{name: "stored logger wins", ctx: WithContext(context.Background(), scoped), fallback: fallback, want: scoped},
		{name: "fallback without stored logger", ctx: context.Background(), fallback: fallback, want: fallback},
		{name: "nil logger is not stored", ctx: WithContext(context.Background(), nil), fallback: fallback, want: fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromContext(tt.ctx, tt.fallback); got != tt.want {
				t.Errorf("FromContext() = %p, want %p", got, tt.want)
			}
		})
	}

	if FromContext(context.Background(), nil) == nil {
		t.Error("FromContext() returned nil without logger or fallback")
	}
}
