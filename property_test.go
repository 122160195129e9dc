// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cond_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"code.hybscloud.com/cond"
)

const propertyN = 300

// layer is one generated handler frame.
type layer struct {
	matches bool // predicate accepts the condition
	claims  bool // body resumes instead of declining
	value   int
}

func randLayers(rng *rand.Rand) []layer {
	n := rng.IntN(8)
	ls := make([]layer, n)
	for i := range ls {
		ls[i] = layer{
			matches: rng.IntN(4) != 0,
			claims:  rng.IntN(3) == 0,
			value:   rng.IntN(2001) - 1000,
		}
	}
	return ls
}

// expected walks layers innermost first, as the dispatcher must.
func expected(ls []layer) (value int, visits []int, handled bool) {
	for i := len(ls) - 1; i >= 0; i-- {
		if !ls[i].matches {
			continue
		}
		visits = append(visits, i)
		if ls[i].claims {
			return ls[i].value, visits, true
		}
	}
	return 0, visits, false
}

// TestPropertyInnermostFirst: for any stack of handlers, the signal
// evaluates to the value of the innermost matching handler that does not
// decline, and every matching handler inside it was consulted in order.
func TestPropertyInnermostFirst(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		ls := randLayers(rng)
		s := cond.NewSession()
		var visits []int

		var frame func(i int) int
		frame = func(i int) int {
			if i == len(ls) {
				return cond.SignalAs[int](s, errTest)
			}
			l := ls[i]
			return cond.Handle(s, []cond.Clause{
				cond.On(func(error) bool { return l.matches }, func(error) cond.Outcome {
					visits = append(visits, i)
					if l.claims {
						return cond.UseValue(l.value)
					}
					return cond.Decline()
				}),
			}, func() int { return frame(i + 1) })
		}
		got, err := cond.Run(s, func() int { return frame(0) })

		want, wantVisits, handled := expected(ls)
		if handled {
			if err != nil || got != want {
				t.Fatalf("layers %+v: got (%d, %v), want %d", ls, got, err, want)
			}
		} else if !errors.Is(err, errTest) {
			t.Fatalf("layers %+v: got %v, want unhandled", ls, err)
		}
		if diff := cmp.Diff(wantVisits, visits); diff != "" {
			t.Fatalf("layers %+v: visits mismatch (-want +got):\n%s", ls, diff)
		}
		if h, r := s.Depth(); h != 0 || r != 0 {
			t.Fatalf("layers %+v: depth (%d, %d) after Run", ls, h, r)
		}
	}
}

// TestPropertyRestartShadowing: with restarts of random names nested at
// random depth, UseRestart(name) always reaches the innermost frame that
// established name.
func TestPropertyRestartShadowing(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	names := []string{"a", "b", "c"}
	for range propertyN {
		depth := 1 + rng.IntN(6)
		frames := make([]string, depth)
		for i := range frames {
			frames[i] = names[rng.IntN(len(names))]
		}
		target := frames[rng.IntN(depth)]
		want := -1
		for i := depth - 1; i >= 0; i-- {
			if frames[i] == target {
				want = i
				break
			}
		}

		s := cond.NewSession()
		var frame func(i int) int
		frame = func(i int) int {
			if i == depth {
				return cond.SignalAs[int](s, errTest)
			}
			return cond.WithRestart(s, frames[i], constant(i), func() int { return frame(i + 1) })
		}
		got := cond.Handle(s, []cond.Clause{
			cond.OnAny(func(error) cond.Outcome { return cond.UseRestart(target) }),
		}, func() int { return frame(0) })
		if got != want {
			t.Fatalf("frames %v target %s: got %d, want %d", frames, target, got, want)
		}
	}
}

// TestPropertyResumePreservesLocals: resuming with a value leaves every
// intermediate frame's locals intact.
func TestPropertyResumePreservesLocals(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	for range propertyN {
		depth := rng.IntN(10)
		v := rng.IntN(100)
		s := cond.NewSession()

		var frame func(i int) string
		frame = func(i int) string {
			local := fmt.Sprintf("f%d", i)
			if i == depth {
				return local + ":" + fmt.Sprint(cond.SignalAs[int](s, errTest))
			}
			return cond.WithRestart(s, local, func(...any) string { return "restart" }, func() string {
				return local + "/" + frame(i+1)
			})
		}
		got := cond.Handle(s, []cond.Clause{
			cond.OnAny(func(error) cond.Outcome { return cond.UseValue(v) }),
		}, func() string { return frame(0) })

		want := ""
		for i := range depth {
			want += fmt.Sprintf("f%d/", i)
		}
		want += fmt.Sprintf("f%d:%d", depth, v)
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}
