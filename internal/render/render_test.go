package render_test

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/johnwards/propgrid/internal/binding"
	"github.com/johnwards/propgrid/internal/domain"
	"github.com/johnwards/propgrid/internal/dynprop"
	"github.com/johnwards/propgrid/internal/render"
)

func spec(name, typeName, category string) *dynprop.PropertySpec {
	s := dynprop.NewPropertySpec(name, typeName)
	s.Category = category
	return s
}

func newProvider(values map[string]any, specs ...*dynprop.PropertySpec) *dynprop.DynamicProperty {
	dp := dynprop.New(dynprop.NewCollection(specs...), dynprop.WithTypes(binding.NewTypeRegistry()))
	dp.OnGetValue(func(e *dynprop.ValueEvent) error {
		e.Value = values[e.Spec.Name]
		return nil
	})
	return dp
}

// plain renders without escape codes.
func plain() render.Options {
	return render.Options{Renderer: lipgloss.NewRenderer(io.Discard)}
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

var _ = Describe("Render", func() {
	Describe("grouping", func() {
		It("orders categories by first appearance and rows by display order", func() {
			dp := newProvider(map[string]any{},
				spec("intensity", "float64", "Light"),
				spec("castShadows", "bool", "Shadows"),
				spec("range", "float64", "Light"),
				spec("notes", "string", ""),
			)

			out, err := render.Render(dp, nil, plain())
			Expect(err).NotTo(HaveOccurred())

			ls := lines(out)
			Expect(ls[0]).To(Equal("Light"))
			Expect(ls[1]).To(ContainSubstring("Intensity"))
			Expect(ls[2]).To(ContainSubstring("Range"))
			Expect(ls[4]).To(Equal("Shadows"))
			Expect(ls[5]).To(ContainSubstring("Cast shadows"))
			Expect(ls[7]).To(Equal(render.Uncategorized))
			Expect(ls[8]).To(ContainSubstring("Notes"))
		})
	})

	Describe("visibility", func() {
		var dp *dynprop.DynamicProperty

		BeforeEach(func() {
			hidden := spec("renderLayer", "int", "")
			hidden.Browsable = false
			disabled := spec("spotAngle", "float64", "")
			disabled.Enabled = false
			dp = newProvider(map[string]any{"renderLayer": 1}, spec("near", "float64", ""), hidden, disabled)
		})

		It("skips hidden and disabled rows", func() {
			out, err := render.Render(dp, nil, plain())
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Near"))
			Expect(out).NotTo(ContainSubstring("Render layer"))
			Expect(out).NotTo(ContainSubstring("Spot angle"))
		})

		It("shows them on request", func() {
			out, err := render.Render(dp, nil, render.Options{ShowHidden: true, Renderer: lipgloss.NewRenderer(io.Discard)})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("Render layer"))
			Expect(out).To(ContainSubstring("Spot angle"))
		})
	})

	Describe("rows", func() {
		It("marks read-only, refresh-trigger and default properties", func() {
			aspect := spec("aspect", "float64", "")
			aspect.ReadOnly = true
			projection := spec("projection", "string", "")
			projection.TriggersRefresh = true
			dp := newProvider(map[string]any{"aspect": 1.5, "projection": "perspective", "fieldOfView": 60.0},
				projection, spec("fieldOfView", "float64", ""), aspect)
			dp.SetDefaultPropertyName("fieldOfView")

			out, err := render.Render(dp, nil, plain())
			Expect(err).NotTo(HaveOccurred())

			ls := lines(out)
			Expect(ls[1]).To(HavePrefix("~ Projection"))
			Expect(ls[1]).To(ContainSubstring(`"perspective"`))
			Expect(ls[2]).To(HavePrefix("* Field of view"))
			Expect(ls[3]).To(ContainSubstring("1.5 (read-only)"))
		})

		It("marks only the first of duplicate-named properties as default", func() {
			dp := newProvider(map[string]any{"intensity": 2.0},
				spec("intensity", "float64", ""), spec("intensity", "float64", ""))
			dp.SetDefaultPropertyName("intensity")

			out, err := render.Render(dp, nil, plain())
			Expect(err).NotTo(HaveOccurred())

			ls := lines(out)
			Expect(ls[1]).To(HavePrefix("* Intensity"))
			Expect(ls[2]).To(HavePrefix("  Intensity"))
		})

		It("expands struct values into field lines", func() {
			pos := spec("position", "Vector3", "Transform")
			pos.Expandable = true
			dp := newProvider(map[string]any{"position": domain.Vector3{X: 1, Y: 2, Z: 3}}, pos)

			out, err := render.Render(dp, nil, plain())
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(ContainSubstring("(1, 2, 3)"))
			Expect(out).To(ContainSubstring("X: 1"))
			Expect(out).To(ContainSubstring("Z: 3"))
		})

		It("returns get errors", func() {
			dp := dynprop.New(dynprop.NewCollection(spec("broken", "int", "")))
			dp.OnGetValue(func(*dynprop.ValueEvent) error { return errors.New("boom") })

			_, err := render.Render(dp, nil, plain())
			Expect(err).To(MatchError(ContainSubstring("boom")))
		})
	})

	DescribeTable("Value",
		func(v any, want string) {
			Expect(render.Value(v)).To(Equal(want))
		},
		Entry("nil", nil, "(none)"),
		Entry("string", "spot", `"spot"`),
		Entry("color", domain.Color("#ff0000"), "#ff0000"),
		Entry("list", []string{"a", "b"}, "[a, b]"),
		Entry("number", 2.5, "2.5"),
		Entry("vector", domain.Vector3{X: 0, Y: 1, Z: -10}, "(0, 1, -10)"),
	)
})
