package engine

import (
	"context"
	"fmt"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"ixtza/ajk/pagesim/simulator"
)

func ref(page string, kind simulator.Kind) simulator.Reference {
	return simulator.Reference{Page: simulator.Page(page), Kind: kind}
}

func randomStream(seed uint64, length, pages int) simulator.Stream {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	stream := make(simulator.Stream, length)
	for i := range stream {
		kind := simulator.Read
		if rng.IntN(4) == 0 {
			kind = simulator.Write
		}
		stream[i] = ref(fmt.Sprintf("%08x", rng.IntN(pages)), kind)
	}
	return stream
}

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		stream simulator.Stream
	)

	BeforeEach(func() {
		ctx = context.Background()
		stream = simulator.Stream{
			ref("00000000", simulator.Read),
			ref("00000000", simulator.Write),
			ref("00000001", simulator.Read),
			ref("00000002", simulator.Read),
			ref("00000000", simulator.Read),
		}
	})

	It("should reject a frame count below one", func() {
		e := MakeBuilder().WithFrameCount(0).Build()

		_, err := e.Run(ctx, stream, simulator.FIFO)

		Expect(err).To(MatchError(simulator.ErrInvalidFrameCount))
	})

	It("should reject an unknown policy", func() {
		e := MakeBuilder().WithFrameCount(2).Build()

		_, err := e.Run(ctx, stream, simulator.Policy("CLOCK"))

		Expect(err).To(MatchError(simulator.ErrUnknownPolicy))
	})

	It("should evict the oldest page under FIFO even after a hit", func() {
		e := MakeBuilder().WithFrameCount(2).Build()

		stats, err := e.Run(ctx, stream, simulator.FIFO)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats).To(Equal(simulator.Statistics{
			PageFaults:    4,
			Replacements:  2,
			DiskWrites:    1,
			TotalAccesses: 5,
		}))
	})

	It("should keep the page with the nearest reuse under OPT", func() {
		e := MakeBuilder().WithFrameCount(2).Build()

		stats, err := e.Run(ctx, stream, simulator.OPT)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats).To(Equal(simulator.Statistics{
			PageFaults:    3,
			Replacements:  1,
			DiskWrites:    0,
			TotalAccesses: 5,
		}))
	})

	It("should count a disk write when OPT evicts a dirty page", func() {
		stream[2] = ref("00000001", simulator.Write)
		e := MakeBuilder().WithFrameCount(2).Build()

		stats, err := e.Run(ctx, stream, simulator.OPT)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Replacements).To(Equal(1))
		Expect(stats.DiskWrites).To(Equal(1))
	})

	It("should let a recent hit protect a page under LRU", func() {
		stream = simulator.Stream{
			ref("a", simulator.Read),
			ref("b", simulator.Read),
			ref("a", simulator.Read),
			ref("c", simulator.Read),
			ref("a", simulator.Read),
		}
		e := MakeBuilder().WithFrameCount(2).Build()

		lruStats, err := e.Run(ctx, stream, simulator.LRU)
		Expect(err).NotTo(HaveOccurred())
		fifoStats, err := e.Run(ctx, stream, simulator.FIFO)
		Expect(err).NotTo(HaveOccurred())

		Expect(lruStats.PageFaults).To(Equal(3))
		Expect(fifoStats.PageFaults).To(Equal(4))
	})

	It("should evict a never reused page before a far reused one under OPT", func() {
		stream = simulator.Stream{
			ref("a", simulator.Write),
			ref("b", simulator.Read),
			ref("c", simulator.Read),
		}
		for range 5000 {
			stream = append(stream, ref("c", simulator.Read))
		}
		stream = append(stream, ref("b", simulator.Read))
		e := MakeBuilder().WithFrameCount(2).Build()

		stats, err := e.Run(ctx, stream, simulator.OPT)

		Expect(err).NotTo(HaveOccurred())
		Expect(stats.PageFaults).To(Equal(3))
		Expect(stats.Replacements).To(Equal(1))
		Expect(stats.DiskWrites).To(Equal(1))
	})

	It("should never replace when every page fits", func() {
		stream = randomStream(7, 2000, 16)
		e := MakeBuilder().WithFrameCount(stream.Pages()).Build()

		for _, policy := range simulator.Policies {
			stats, err := e.Run(ctx, stream, policy)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Replacements).To(BeZero(), string(policy))
			Expect(stats.PageFaults).To(Equal(stream.Pages()), string(policy))
		}
	})

	It("should not size its state by a huge frame count", func() {
		stream = simulator.Stream{
			ref("00000000", simulator.Write),
			ref("00000001", simulator.Read),
		}
		e := MakeBuilder().WithFrameCount(1 << 34).Build()

		for _, policy := range simulator.Policies {
			stats, err := e.Run(ctx, stream, policy)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats).To(Equal(simulator.Statistics{
				PageFaults:    2,
				TotalAccesses: 2,
			}), string(policy))
		}
	})

	It("should account every access as a hit or a fault", func() {
		stream = randomStream(3, 1500, 40)
		e := MakeBuilder().WithFrameCount(8).Build()

		for _, policy := range simulator.Policies {
			stats, err := e.Run(ctx, stream, policy)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats.TotalAccesses).To(Equal(len(stream)))
			Expect(stats.Hits() + stats.PageFaults).To(Equal(stats.TotalAccesses))
			Expect(stats.DiskWrites).To(BeNumerically("<=", stats.Replacements))
		}
	})

	It("should give identical statistics when a run is repeated", func() {
		stream = randomStream(11, 1000, 30)
		e := MakeBuilder().WithFrameCount(5).Build()

		for _, policy := range simulator.Policies {
			first, err := e.Run(ctx, stream, policy)
			Expect(err).NotTo(HaveOccurred())
			second, err := e.Run(ctx, stream, policy)
			Expect(err).NotTo(HaveOccurred())

			Expect(second).To(Equal(first))
		}
	})

	DescribeTable("OPT should fault no more than FIFO and LRU",
		func(seed uint64, frames, pages int) {
			stream = randomStream(seed, 3000, pages)
			e := MakeBuilder().WithFrameCount(frames).Build()

			optStats, err := e.Run(ctx, stream, simulator.OPT)
			Expect(err).NotTo(HaveOccurred())
			fifoStats, err := e.Run(ctx, stream, simulator.FIFO)
			Expect(err).NotTo(HaveOccurred())
			lruStats, err := e.Run(ctx, stream, simulator.LRU)
			Expect(err).NotTo(HaveOccurred())

			Expect(optStats.PageFaults).To(BeNumerically("<=", fifoStats.PageFaults))
			Expect(optStats.PageFaults).To(BeNumerically("<=", lruStats.PageFaults))
		},
		Entry("one frame", uint64(1), 1, 10),
		Entry("few frames", uint64(2), 3, 20),
		Entry("many frames", uint64(3), 32, 64),
		Entry("more frames than pages", uint64(4), 100, 50),
	)

	It("should stop when the context is cancelled", func() {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		e := MakeBuilder().WithFrameCount(2).Build()

		for _, policy := range simulator.Policies {
			_, err := e.Run(cancelled, stream, policy)

			Expect(err).To(MatchError(context.Canceled))
		}
	})

	It("should return an empty result for an empty stream", func() {
		e := MakeBuilder().WithFrameCount(4).Build()

		for _, policy := range simulator.Policies {
			stats, err := e.Run(ctx, simulator.Stream{}, policy)

			Expect(err).NotTo(HaveOccurred())
			Expect(stats).To(BeZero())
		}
	})

	Context("with a progress observer", func() {
		var (
			mockCtrl *gomock.Controller
			observer *MockProgressObserver
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			observer = NewMockProgressObserver(mockCtrl)
			stream = randomStream(5, 20, 6)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		DescribeTable("should report at the configured cadence",
			func(policy simulator.Policy) {
				for _, done := range []int{0, 5, 10, 15} {
					observer.EXPECT().Progress(done, 20)
				}
				e := MakeBuilder().
					WithFrameCount(3).
					WithProgressObserver(observer).
					WithProgressCadence(5).
					Build()

				_, err := e.Run(ctx, stream, policy)

				Expect(err).NotTo(HaveOccurred())
			},
			Entry("FIFO", simulator.FIFO),
			Entry("LRU", simulator.LRU),
			Entry("OPT", simulator.OPT),
		)

		It("should report ten times by default", func() {
			observer.EXPECT().Progress(gomock.Any(), 20).Times(10)
			e := MakeBuilder().
				WithFrameCount(3).
				WithProgressObserver(observer).
				Build()

			_, err := e.Run(ctx, stream, simulator.OPT)

			Expect(err).NotTo(HaveOccurred())
		})
	})

	It("should run every policy and keep the requested order", func() {
		stream = randomStream(13, 2500, 50)
		e := MakeBuilder().WithFrameCount(6).Build()

		results, err := e.RunAll(ctx, stream, simulator.OPT, simulator.FIFO, simulator.LRU)

		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))
		for i, policy := range []simulator.Policy{simulator.OPT, simulator.FIFO, simulator.LRU} {
			alone, err := e.Run(ctx, stream, policy)
			Expect(err).NotTo(HaveOccurred())

			Expect(results[i].Policy).To(Equal(policy))
			Expect(results[i].Frames).To(Equal(6))
			Expect(results[i].Stats).To(Equal(alone))
		}
	})

	It("should fail RunAll when one policy is invalid", func() {
		e := MakeBuilder().WithFrameCount(2).Build()

		_, err := e.RunAll(ctx, stream, simulator.FIFO, simulator.Policy("NRU"))

		Expect(err).To(MatchError(simulator.ErrUnknownPolicy))
	})
})
