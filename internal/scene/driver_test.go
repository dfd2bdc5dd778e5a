package scene_test

import (
	"context"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nlink/internal/chain"
	"github.com/san-kum/nlink/internal/geometry"
	"github.com/san-kum/nlink/internal/raster"
	"github.com/san-kum/nlink/internal/scene"
)

func threeLinks() []chain.Link {
	return []chain.Link{{Length: 1, Mass: 1}, {Length: 1, Mass: 2}, {Length: 2, Mass: 3}}
}

func newDriver(surface scene.Surface, angles []float64, links []chain.Link) *scene.Driver {
	c, err := chain.New(angles, make([]float64, len(angles)))
	Expect(err).NotTo(HaveOccurred())
	d, err := scene.NewDriver(surface, c, scene.Options{
		Links:       links,
		Params:      chain.Params{Gravity: -9.81, Dt: 0.01},
		Margin:      1,
		JointRadius: 1,
	})
	Expect(err).NotTo(HaveOccurred())
	return d
}

var _ = Describe("Driver", func() {
	var (
		surface *gridSurface
		driver  *scene.Driver
	)

	BeforeEach(func() {
		surface = newGridSurface(80, 24)
		driver = newDriver(surface, []float64{0.4, -0.3, 1.1}, threeLinks())
	})

	Describe("construction", func() {
		It("rejects a zero timestep", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			_, err := scene.NewDriver(surface, c, scene.Options{
				Links:  []chain.Link{{Length: 1}},
				Params: chain.Params{Gravity: -9.81},
			})
			Expect(err).To(MatchError(scene.ErrTimestep))
		})

		It("rejects link parameters that do not match the chain", func() {
			c, _ := chain.New([]float64{0, 0}, []float64{0, 0})
			_, err := scene.NewDriver(surface, c, scene.Options{
				Links:  []chain.Link{{Length: 1}},
				Params: chain.Params{Dt: 0.01},
			})
			Expect(err).To(MatchError(chain.ErrLinkCount))
		})

		It("rejects an initial selection outside the chain", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			_, err := scene.NewDriver(surface, c, scene.Options{
				Links:    []chain.Link{{Length: 1}},
				Params:   chain.Params{Dt: 0.01},
				Selected: 1,
			})
			Expect(err).To(MatchError(scene.ErrSelection))
		})

		It("rejects a nil surface", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			_, err := scene.NewDriver(nil, c, scene.Options{Links: []chain.Link{{Length: 1}}, Params: chain.Params{Dt: 0.01}})
			Expect(err).To(MatchError(scene.ErrNoSurface))
		})

		It("sizes the viewport from the surface", func() {
			Expect(driver.Viewport()).To(Equal(geometry.NewViewport(80, 24, 1)))
			Expect(driver.State()).To(Equal(scene.Running))
		})

		It("starts paused when asked to", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			d, err := scene.NewDriver(surface, c, scene.Options{
				Links:  []chain.Link{{Length: 1}},
				Params: chain.Params{Dt: 0.01},
				Paused: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.State()).To(Equal(scene.Paused))
		})
	})

	Describe("transitions", func() {
		DescribeTable("from Running",
			func(a scene.Action, want scene.State) {
				driver.Apply(a)
				Expect(driver.State()).To(Equal(want))
			},
			Entry("none", scene.None{}, scene.Running),
			Entry("toggle pause", scene.TogglePause{}, scene.Paused),
			Entry("quit", scene.Quit{}, scene.Terminated),
			Entry("resize", scene.Resize{Width: 100, Height: 40}, scene.Running),
			Entry("select", scene.SelectLink{Index: 2}, scene.Running),
		)

		It("treats a nil action as None", func() {
			driver.Apply(nil)
			Expect(driver.State()).To(Equal(scene.Running))
		})

		DescribeTable("from Paused",
			func(a scene.Action, want scene.State) {
				driver.Apply(scene.TogglePause{})
				driver.Apply(a)
				Expect(driver.State()).To(Equal(want))
			},
			Entry("none", scene.None{}, scene.Paused),
			Entry("toggle pause", scene.TogglePause{}, scene.Running),
			Entry("quit", scene.Quit{}, scene.Terminated),
			Entry("resize", scene.Resize{Width: 100, Height: 40}, scene.Paused),
			Entry("select", scene.SelectLink{Index: 1}, scene.Paused),
		)

		It("stays terminated", func() {
			driver.Apply(scene.Quit{})
			driver.Apply(scene.TogglePause{})
			Expect(driver.State()).To(Equal(scene.Terminated))
		})
	})

	Describe("selection", func() {
		It("selects a link in range", func() {
			driver.Apply(scene.SelectLink{Index: 2})
			Expect(driver.Selected()).To(Equal(2))
		})

		It("ignores an index equal to the link count", func() {
			driver.Apply(scene.SelectLink{Index: 1})
			Expect(func() { driver.Apply(scene.SelectLink{Index: 3}) }).NotTo(Panic())
			Expect(driver.Selected()).To(Equal(1))
		})

		It("ignores negative indices", func() {
			driver.Apply(scene.SelectLink{Index: -1})
			Expect(driver.Selected()).To(Equal(0))
		})

		It("cycles with wrap-around", func() {
			driver.Apply(scene.CycleSelection{Delta: -1})
			Expect(driver.Selected()).To(Equal(2))
			driver.Apply(scene.CycleSelection{Delta: 1})
			Expect(driver.Selected()).To(Equal(0))
			driver.Apply(scene.CycleSelection{Delta: 4})
			Expect(driver.Selected()).To(Equal(1))
		})
	})

	Describe("pausing", func() {
		It("leaves the chain untouched across paused ticks and resumes from it", func() {
			Expect(driver.Tick(scene.None{})).To(Succeed())
			Expect(driver.Tick(scene.TogglePause{})).To(Succeed())
			frozen := driver.Chain()
			steps := driver.Steps()

			for i := 0; i < 250; i++ {
				Expect(driver.Tick(scene.None{})).To(Succeed())
			}
			Expect(driver.Chain().Equal(frozen)).To(BeTrue())
			Expect(driver.Steps()).To(Equal(steps))
			Expect(surface.shows).To(Equal(252))
			Expect(driver.Ticks()).To(Equal(uint64(252)))

			Expect(driver.Tick(scene.TogglePause{})).To(Succeed())
			expected := frozen.Clone()
			chain.Step(expected, threeLinks(), -9.81, 0.01)
			Expect(driver.Chain().Equal(expected)).To(BeTrue())
			Expect(driver.Steps()).To(Equal(steps + 1))
		})

		It("advances exactly once per running tick", func() {
			expected := driver.Chain()
			for i := 0; i < 10; i++ {
				Expect(driver.Tick(scene.None{})).To(Succeed())
				chain.Step(expected, threeLinks(), -9.81, 0.01)
			}
			Expect(driver.Chain().Equal(expected)).To(BeTrue())
		})
	})

	Describe("quitting", func() {
		It("neither steps nor renders the quitting tick", func() {
			before := driver.Chain()
			Expect(driver.Tick(scene.Quit{})).To(Succeed())
			Expect(driver.Chain().Equal(before)).To(BeTrue())
			Expect(surface.shows).To(Equal(0))
		})
	})

	Describe("rendering", func() {
		It("starts the first segment at the viewport centre", func() {
			Expect(driver.Render()).To(Succeed())
			vp := driver.Viewport()
			Expect(surface.At(vp.Center.Col, vp.Center.Row).Set).To(BeTrue())
		})

		It("draws every joint with the selection-aware marker style", func() {
			driver.Apply(scene.SelectLink{Index: 1})
			Expect(driver.Render()).To(Succeed())

			c := driver.Chain()
			lengths := chain.Lengths(driver.Links())
			cells := geometry.ToCells(geometry.Joints(lengths, c.Angles), geometry.Reach(lengths), driver.Viewport())
			for i, cell := range cells {
				// radius 1 marker: the cell directly below the joint
				got := surface.At(cell.Col, cell.Row+1)
				Expect(got.Set).To(BeTrue(), "joint %d", i)
				if i == 1 {
					Expect(got.Style).To(Equal(raster.JointSelected))
				}
			}
		})

		It("clears before every frame", func() {
			surface.Paint(0, 23, raster.Rod)
			Expect(driver.Render()).To(Succeed())
			Expect(surface.At(0, 23).Set).To(BeFalse())
			Expect(surface.clears).To(Equal(1))
		})

		It("keeps markers on top of the segment leading into them", func() {
			d := newDriver(surface, []float64{0}, []chain.Link{{Length: 1}})
			Expect(d.Render()).To(Succeed())
			vp := d.Viewport()
			// hanging straight: joint at centre - extent, marker radius 1 covers the rod's last cells
			joint := geometry.Cell{Col: vp.Center.Col, Row: vp.Center.Row - vp.Extent}
			Expect(surface.At(joint.Col, joint.Row+1).Style).To(Equal(raster.JointSelected))
			Expect(surface.At(joint.Col, joint.Row+2).Style).To(Equal(raster.RodSelected))
		})

		It("collapses onto the centre when the viewport has no extent", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			d, err := scene.NewDriver(surface, c, scene.Options{
				Links:  []chain.Link{{Length: 1}},
				Params: chain.Params{Dt: 0.01},
			})
			Expect(err).NotTo(HaveOccurred())
			d.Apply(scene.Resize{Width: 2, Height: 2})
			Expect(d.Viewport().Extent).To(Equal(0))
			Expect(d.Render()).To(Succeed())
			Expect(surface.At(1, 1).Style).To(Equal(raster.JointSelected))
			Expect(surface.Count()).To(Equal(1))
		})

		It("propagates surface failures", func() {
			surface.failing = true
			Expect(driver.Tick(scene.None{})).To(MatchError(errShow))
		})

		It("skips a chain with a non-finite angle but still shows the frame", func() {
			c, _ := chain.New([]float64{0.2, math.NaN()}, []float64{0, 0})
			d, err := scene.NewDriver(surface, c, scene.Options{
				Links:      []chain.Link{{Length: 1}, {Length: 1}},
				Params:     chain.Params{Gravity: -9.81, Dt: 0.01},
				ShowStatus: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Diverged()).To(BeTrue())

			done := make(chan error, 1)
			go func() { done <- d.Render() }()
			Eventually(done, "2s").Should(Receive(BeNil()))
			Expect(surface.At(40, 12).Set).To(BeFalse())
			Expect(surface.String()).To(ContainSubstring("link 1/2"))
			Expect(surface.shows).To(Equal(1))
		})

		It("stops drawing once a step overflows the angle", func() {
			c, _ := chain.New([]float64{0}, []float64{math.MaxFloat64})
			d, err := scene.NewDriver(surface, c, scene.Options{
				Links:  []chain.Link{{Length: 1}},
				Params: chain.Params{Gravity: -9.81, Dt: 10},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Diverged()).To(BeFalse())

			done := make(chan error, 1)
			go func() { done <- d.Tick(scene.None{}) }()
			Eventually(done, "2s").Should(Receive(BeNil()))
			Expect(d.Diverged()).To(BeTrue())
			Expect(surface.Count()).To(Equal(0))
		})

		It("bounds the joint marker radius", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			d, err := scene.NewDriver(surface, c, scene.Options{
				Links:       []chain.Link{{Length: 1}},
				Params:      chain.Params{Dt: 0.01},
				JointRadius: 2000000000,
			})
			Expect(err).NotTo(HaveOccurred())

			done := make(chan error, 1)
			go func() { done <- d.Render() }()
			Eventually(done, "2s").Should(Receive(BeNil()))
			Expect(surface.At(40-scene.MaxJointRadius, 0).Style).To(Equal(raster.JointSelected))
			Expect(surface.At(40-scene.MaxJointRadius-1, 0).Set).To(BeFalse())
		})

		It("writes a status line when enabled", func() {
			c, _ := chain.New([]float64{0}, []float64{0})
			d, err := scene.NewDriver(surface, c, scene.Options{
				Links:      []chain.Link{{Length: 1, Mass: 2}},
				Params:     chain.Params{Gravity: -9.81, Dt: 0.01},
				ShowStatus: true,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Tick(scene.TogglePause{})).To(Succeed())
			Expect(surface.String()).To(ContainSubstring("link 1/1"))
			Expect(surface.String()).To(ContainSubstring("paused"))
		})
	})

	Describe("resizing", func() {
		It("uses the new viewport for the very next frame", func() {
			Expect(driver.Tick(scene.TogglePause{})).To(Succeed())
			surface.Resize(160, 50)
			Expect(driver.Tick(scene.Resize{Width: 160, Height: 50})).To(Succeed())

			vp := driver.Viewport()
			Expect(vp).To(Equal(geometry.NewViewport(160, 50, 1)))

			c := driver.Chain()
			lengths := chain.Lengths(driver.Links())
			tip := geometry.ToCell(geometry.JointPosition(lengths, c.Angles, 2), geometry.Reach(lengths), vp)
			Expect(surface.At(tip.Col, tip.Row+1).Set).To(BeTrue())
		})
	})

	Describe("editing links", func() {
		It("adds a link copying the last parameters", func() {
			driver.Apply(scene.AddLink{})
			Expect(driver.Links()).To(HaveLen(4))
			Expect(driver.Links()[3]).To(Equal(chain.Link{Length: 2, Mass: 3}))
			c := driver.Chain()
			Expect(c.Angles).To(HaveLen(4))
			Expect(c.Velocities).To(HaveLen(4))
		})

		It("removes links down to one and clamps the selection", func() {
			driver.Apply(scene.SelectLink{Index: 2})
			for i := 0; i < 5; i++ {
				driver.Apply(scene.RemoveLink{})
			}
			Expect(driver.Links()).To(HaveLen(1))
			Expect(driver.Chain().Len()).To(Equal(1))
			Expect(driver.Selected()).To(Equal(0))
		})

		It("resets to the initial chain", func() {
			initial := driver.Chain()
			driver.Apply(scene.AddLink{})
			for i := 0; i < 20; i++ {
				Expect(driver.Tick(scene.None{})).To(Succeed())
			}
			driver.Apply(scene.Reset{})
			Expect(driver.Chain().Equal(initial)).To(BeTrue())
			Expect(driver.Links()).To(Equal(threeLinks()))
		})
	})
})

var _ = Describe("Run", func() {
	var (
		surface *gridSurface
		driver  *scene.Driver
	)

	BeforeEach(func() {
		surface = newGridSurface(40, 20)
		driver = newDriver(surface, []float64{1}, []chain.Link{{Length: 1}})
	})

	It("returns nil on Quit", func() {
		actions := make(chan scene.Action, 1)
		actions <- scene.Quit{}
		Expect(driver.Run(context.Background(), actions)).To(Succeed())
		Expect(driver.State()).To(Equal(scene.Terminated))
	})

	It("treats a closed action channel as Quit", func() {
		actions := make(chan scene.Action)
		close(actions)
		Expect(driver.Run(context.Background(), actions)).To(Succeed())
	})

	It("stops on context cancellation", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		err := driver.Run(ctx, make(chan scene.Action))
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Expect(driver.Steps()).To(BeNumerically(">", 0))
	})

	It("does not wait for the timeout when an action is pending", func() {
		c, _ := chain.New([]float64{1}, []float64{0})
		slow, err := scene.NewDriver(surface, c, scene.Options{
			Links:  []chain.Link{{Length: 1}},
			Params: chain.Params{Gravity: -9.81, Dt: 10},
		})
		Expect(err).NotTo(HaveOccurred())

		actions := make(chan scene.Action, 2)
		actions <- scene.TogglePause{}
		actions <- scene.Quit{}
		start := time.Now()
		Expect(slow.Run(context.Background(), actions)).To(Succeed())
		Expect(time.Since(start)).To(BeNumerically("<", time.Second))
		Expect(slow.State()).To(Equal(scene.Terminated))
		Expect(slow.Steps()).To(BeZero())
	})

	It("rounds the interval to whole milliseconds", func() {
		Expect(driver.Interval()).To(Equal(10 * time.Millisecond))
	})

	It("fails fast when the first frame cannot be shown", func() {
		surface.failing = true
		Expect(driver.Run(context.Background(), nil)).To(MatchError(errShow))
	})
})
