package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/veldtwork/tilemap"
)

// newModePanel builds the overhang panel: one button per policy plus reload,
// anchored to the top right. Buttons use colored nine-slices and the
// built-in basic font, so no theme assets need loading.
func newModePanel(g *Game) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	title := widget.NewText(
		widget.TextOpts.Text("overhang", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)
	panel.AddChild(title)

	modes := []tilemap.OverhangMode{
		tilemap.OverhangNone,
		tilemap.OverhangDominance,
		tilemap.OverhangPerspective,
	}
	for _, mode := range modes {
		m := mode
		btn := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(m.String(), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.switchMode(m)
			}),
		)
		panel.AddChild(btn)
	}

	reloadBtn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
		widget.ButtonOpts.Text("reload", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			g.reload()
		}),
	)
	panel.AddChild(reloadBtn)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
