// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"code.hybscloud.com/cond"
)

func TestContextRoundTrip(t *testing.T) {
	s := cond.NewSession()
	ctx := cond.NewContext(context.Background(), s)
	got, ok := cond.FromContext(ctx)
	if !ok || got != s {
		t.Fatal("session not recovered from context")
	}
	if _, ok := cond.FromContext(context.Background()); ok {
		t.Fatal("empty context yielded a session")
	}
}

func TestLoggerRecordsDispatch(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := cond.NewSession(cond.WithLogger(logger))

	cond.Handle(s, []cond.Clause{
		cond.OnAny(func(error) cond.Outcome { return cond.UseRestart("use-default") }),
	}, func() int {
		return divide(s, 1, 0)
	})

	out := buf.String()
	for _, want := range []string{
		"cond: establish restart",
		"cond: establish handler",
		"cond: signal",
		"cond: invoke restart",
		"cond: resume",
		"condition=\"divide by zero\"",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("log lacks %q:\n%s", want, out)
		}
	}
}

func TestNilLoggerKeepsDefault(t *testing.T) {
	s := cond.NewSession(cond.WithLogger(nil))
	// Must not panic on a nil logger.
	cond.WithRestart(s, "r", constant(0), func() int { return 0 })
}

func TestSessionsAreIndependent(t *testing.T) {
	a := cond.NewSession()
	b := cond.NewSession()
	cond.WithRestart(a, "only-a", constant(0), func() int {
		if _, ok := b.FindRestart("only-a"); ok {
			t.Fatal("restart leaked across sessions")
		}
		return 0
	})
}

func TestSessionPerGoroutine(t *testing.T) {
	done := make(chan int, 4)
	for i := range 4 {
		go func() {
			s := cond.NewSession()
			done <- cond.Handle(s, []cond.Clause{
				cond.OnAny(func(error) cond.Outcome { return cond.UseValue(i) }),
			}, func() int {
				return cond.SignalAs[int](s, errTest)
			})
		}()
	}
	sum := 0
	for range 4 {
		sum += <-done
	}
	if sum != 0+1+2+3 {
		t.Fatalf("got %d, want 6", sum)
	}
}
