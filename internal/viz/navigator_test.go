package viz

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("navigator", func() {
	DescribeTable("moves the cursor",
		func(start, last int, key Key, wantCursor int, want action) {
			n := navigator{interactive: true, cursor: start}
			Expect(n.handle(key, last)).To(Equal(want))
			Expect(n.cursor).To(Equal(wantCursor))
			Expect(n.interactive).To(BeTrue())
		},
		Entry("h steps back", 2, 4, RuneKey('h'), 1, actionRedraw),
		Entry("h stops at the oldest frame", 0, 4, RuneKey('h'), 0, actionRedraw),
		Entry("l steps forward", 2, 4, RuneKey('l'), 3, actionRedraw),
		Entry("space steps forward", 2, 4, RuneKey(' '), 3, actionRedraw),
		Entry("l at the newest frame advances", 4, 4, RuneKey('l'), 4, actionAdvance),
		Entry("space at the newest frame advances", 4, 4, RuneKey(' '), 4, actionAdvance),
		Entry("_ jumps to the oldest frame", 3, 4, RuneKey('_'), 0, actionRedraw),
		Entry("$ jumps to the newest frame", 1, 4, RuneKey('$'), 4, actionRedraw),
		Entry("unknown keys are ignored", 1, 4, RuneKey('x'), 1, actionIgnore),
		Entry("other key codes are ignored", 1, 4, Key{Code: KeyOther}, 1, actionIgnore),
	)

	DescribeTable("pans the viewport",
		func(start Viewport, key Key, want Viewport) {
			n := navigator{interactive: true, view: start}
			Expect(n.handle(key, 0)).To(Equal(actionRedraw))
			Expect(n.view).To(Equal(want))
		},
		Entry("down", Viewport{}, Key{Code: KeyDown}, Viewport{Row: 1}),
		Entry("right", Viewport{Row: 2}, Key{Code: KeyRight}, Viewport{Row: 2, Col: 1}),
		Entry("up", Viewport{Row: 2, Col: 3}, Key{Code: KeyUp}, Viewport{Row: 1, Col: 3}),
		Entry("left", Viewport{Row: 2, Col: 3}, Key{Code: KeyLeft}, Viewport{Row: 2, Col: 2}),
		Entry("up clamps at zero", Viewport{Col: 3}, Key{Code: KeyUp}, Viewport{Col: 3}),
		Entry("left clamps at zero", Viewport{Row: 1}, Key{Code: KeyLeft}, Viewport{Row: 1}),
		Entry("down is unbounded", Viewport{Row: 500}, Key{Code: KeyDown}, Viewport{Row: 501}),
	)

	It("leaves interactive mode on q", func() {
		n := navigator{interactive: true, cursor: 1}
		Expect(n.handle(RuneKey('q'), 3)).To(Equal(actionQuit))
		Expect(n.interactive).To(BeFalse())
		Expect(n.cursor).To(Equal(1))
	})
})

var _ = Describe("ScriptKeys", func() {
	It("parses runes and named keys", func() {
		s := ScriptKeys("h<up> <left>_<bogus>$")
		var got []Key
		for {
			k, err := s.ReadKey()
			if err != nil {
				break
			}
			got = append(got, k)
		}
		Expect(got).To(Equal([]Key{
			RuneKey('h'), {Code: KeyUp}, {Code: KeySpace, Rune: ' '}, {Code: KeyLeft}, RuneKey('_'),
			RuneKey('<'), RuneKey('b'), RuneKey('o'), RuneKey('g'), RuneKey('u'), RuneKey('s'), RuneKey('>'),
			RuneKey('$'),
		}))
		Expect(s.Remaining()).To(BeZero())
	})

	It("reports Ctrl-C as an interrupt", func() {
		_, err := ScriptKeys("<C-c>").ReadKey()
		Expect(err).To(MatchError(ErrInterrupted))
	})
})
