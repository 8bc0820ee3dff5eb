package hud

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/charcontrol/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	heartSize   = 18
	segmentSize = 12
)

// HUD is the ebitenui overlay bound to one set of vitals.
type HUD struct {
	ui    *ebitenui.UI
	model Model

	hearts   *widget.Container
	segments []*widget.Container

	heartFull  *imageui.NineSlice
	heartEmpty *imageui.NineSlice
	manaFull   *imageui.NineSlice
	manaEmpty  *imageui.NineSlice
}

func New(v *component.Vitals) *HUD {
	h := &HUD{
		heartFull:  imageui.NewNineSliceColor(colornames.Crimson),
		heartEmpty: imageui.NewNineSliceColor(color.NRGBA{R: 0x40, G: 0x10, B: 0x14, A: 0xff}),
		manaFull:   imageui.NewNineSliceColor(colornames.Deepskyblue),
		manaEmpty:  imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x20, B: 0x38, A: 0xff}),
	}

	face := ebtext.Face(ebtext.NewGoXFace(basicfont.Face7x13))
	rowLayout := func(spacing int) widget.ContainerOpt {
		return widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(spacing),
		))
	}

	h.hearts = widget.NewContainer(rowLayout(4))

	mana := widget.NewContainer(rowLayout(2))
	mana.AddChild(widget.NewText(
		widget.TextOpts.Text("MP", &face, color.White),
	))
	for i := 0; i < ManaSegments; i++ {
		cell := widget.NewContainer(
			widget.ContainerOpts.BackgroundImage(h.manaEmpty),
			widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(segmentSize, segmentSize)),
		)
		h.segments = append(h.segments, cell)
		mana.AddChild(cell)
	}

	column := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Left: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	column.AddChild(h.hearts)
	column.AddChild(mana)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(column)
	h.ui = &ebitenui.UI{Container: root}

	h.model.Bind(v)
	h.apply()
	return h
}

// Model exposes the values the HUD is showing.
func (h *HUD) Model() *Model { return &h.model }

func (h *HUD) Update() {
	if h.model.TakeDirty() {
		h.apply()
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func (h *HUD) apply() {
	hearts := h.model.Hearts()
	if len(h.hearts.Children()) != len(hearts) {
		h.hearts.RemoveChildren()
		for range hearts {
			h.hearts.AddChild(widget.NewContainer(
				widget.ContainerOpts.BackgroundImage(h.heartEmpty),
				widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(heartSize, heartSize)),
			))
		}
	}
	for i, child := range h.hearts.Children() {
		heart, ok := child.(*widget.Container)
		if !ok {
			continue
		}
		heart.SetBackgroundImage(h.heartEmpty)
		if hearts[i] {
			heart.SetBackgroundImage(h.heartFull)
		}
	}

	filled := h.model.FilledSegments()
	for i, cell := range h.segments {
		cell.SetBackgroundImage(h.manaEmpty)
		if i < filled {
			cell.SetBackgroundImage(h.manaFull)
		}
	}
}
