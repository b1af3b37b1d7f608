package session

import (
	"errors"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/san-kum/cardsearch/internal/deck"
	"github.com/san-kum/cardsearch/internal/search"
)

var _ = ginkgo.Describe("Session", func() {
	var s *Session

	ginkgo.BeforeEach(func() {
		s = New()
	})

	ginkgo.It("starts idle with nothing to show", func() {
		gomega.Expect(s.State()).To(gomega.Equal(Idle))
		_, ok := s.Current()
		gomega.Expect(ok).To(gomega.BeFalse())
		gomega.Expect(s.History()).To(gomega.BeEmpty())
		_, ok = s.Result()
		gomega.Expect(ok).To(gomega.BeFalse())
	})

	ginkgo.It("rejects advance and back while idle", func() {
		err := s.Advance()
		gomega.Expect(errors.Is(err, ErrInvalidTransition)).To(gomega.BeTrue())

		var terr *TransitionError
		gomega.Expect(errors.As(err, &terr)).To(gomega.BeTrue())
		gomega.Expect(terr.From).To(gomega.Equal(Idle))
		gomega.Expect(terr.Op).To(gomega.Equal("advance"))

		gomega.Expect(errors.Is(s.Back(), ErrInvalidTransition)).To(gomega.BeTrue())
	})

	ginkgo.It("stays idle when the input is invalid", func() {
		err := s.Start("5, 2, 3", 2)
		gomega.Expect(errors.Is(err, deck.ErrNotAscending)).To(gomega.BeTrue())
		gomega.Expect(s.State()).To(gomega.Equal(Idle))
	})

	ginkgo.It("replays the example to completion", func() {
		gomega.Expect(s.Start(ExampleCards, ExampleTarget)).To(gomega.Succeed())
		gomega.Expect(s.State()).To(gomega.Equal(Running))
		gomega.Expect(s.CanAdvance()).To(gomega.BeTrue())
		gomega.Expect(s.Cursor()).To(gomega.Equal(0))

		cur, ok := s.Current()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(cur.Action).To(gomega.Equal(search.ActionInitial))

		total := len(s.Steps())
		gomega.Expect(total).To(gomega.Equal(9))

		for i := 1; i < total; i++ {
			gomega.Expect(s.Advance()).To(gomega.Succeed())
			gomega.Expect(s.Cursor()).To(gomega.Equal(i))
			gomega.Expect(s.History()).To(gomega.HaveLen(i + 1))
			gomega.Expect(s.State()).To(gomega.Equal(Running))
		}

		_, ok = s.Result()
		gomega.Expect(ok).To(gomega.BeFalse(), "result is only available once completed")

		gomega.Expect(s.Advance()).To(gomega.Succeed())
		gomega.Expect(s.State()).To(gomega.Equal(Completed))
		gomega.Expect(s.CanAdvance()).To(gomega.BeFalse())
		gomega.Expect(s.Cursor()).To(gomega.Equal(total - 1))

		res, ok := s.Result()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(res.Found).To(gomega.BeTrue())
		gomega.Expect(res.Target).To(gomega.Equal(8))
		gomega.Expect(res.SearchPath).To(gomega.Equal([]int{13, 3, 5, 8}))
		gomega.Expect(res.TotalComparisons).To(gomega.Equal(4))
		gomega.Expect(res.Efficiency).To(gomega.Equal(40))

		gomega.Expect(errors.Is(s.Advance(), ErrInvalidTransition)).To(gomega.BeTrue())
	})

	ginkgo.It("steps backward through the history", func() {
		gomega.Expect(s.Start("1, 2, 3", 3)).To(gomega.Succeed())
		gomega.Expect(s.Back()).To(gomega.Succeed())
		gomega.Expect(s.Cursor()).To(gomega.Equal(0))

		gomega.Expect(s.Advance()).To(gomega.Succeed())
		gomega.Expect(s.Advance()).To(gomega.Succeed())
		gomega.Expect(s.Back()).To(gomega.Succeed())
		gomega.Expect(s.Cursor()).To(gomega.Equal(1))
	})

	ginkgo.It("refuses a second start until reset", func() {
		gomega.Expect(s.Start("1", 1)).To(gomega.Succeed())
		gomega.Expect(errors.Is(s.Start("1", 1), ErrInvalidTransition)).To(gomega.BeTrue())

		s.Reset()
		gomega.Expect(s.State()).To(gomega.Equal(Idle))
		gomega.Expect(s.Steps()).To(gomega.BeNil())
		gomega.Expect(s.Start("1", 1)).To(gomega.Succeed())
	})

	ginkgo.It("completes an empty deck after the not_found step", func() {
		gomega.Expect(s.Start("", 4)).To(gomega.Succeed())
		gomega.Expect(s.Steps()).To(gomega.HaveLen(2))

		gomega.Expect(s.Advance()).To(gomega.Succeed())
		cur, _ := s.Current()
		gomega.Expect(cur.Action).To(gomega.Equal(search.ActionNotFound))

		gomega.Expect(s.Advance()).To(gomega.Succeed())
		res, ok := s.Result()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(res.Found).To(gomega.BeFalse())
		gomega.Expect(res.Efficiency).To(gomega.Equal(0))
	})

	ginkgo.It("loads the example from any state", func() {
		gomega.Expect(s.Start("1", 1)).To(gomega.Succeed())
		gomega.Expect(s.LoadExample()).To(gomega.Succeed())
		gomega.Expect(s.Deck()).To(gomega.HaveLen(10))
		target, ok := s.Target()
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(target).To(gomega.Equal(ExampleTarget))
	})

	ginkgo.Context("with the strict policy", func() {
		ginkgo.BeforeEach(func() {
			s = New(WithPolicy(deck.Strict))
		})

		ginkgo.It("fails on malformed tokens", func() {
			err := s.Start("1, x, 3", 3)
			gomega.Expect(errors.Is(err, deck.ErrInvalidToken)).To(gomega.BeTrue())
			gomega.Expect(s.State()).To(gomega.Equal(Idle))
		})
	})

	ginkgo.Context("with a sequential simulator", func() {
		ginkgo.BeforeEach(func() {
			s = New(WithSimulator(search.New(search.WithNumbering(search.Sequential))))
		})

		ginkgo.It("numbers steps by position", func() {
			gomega.Expect(s.Start("2, 4", 5)).To(gomega.Succeed())
			for i, st := range s.Steps() {
				gomega.Expect(st.Number).To(gomega.Equal(i))
			}
		})
	})
})
