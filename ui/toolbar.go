package ui

import (
	"bytes"
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	cfg "github.com/leo110047/ODANGO/config"
	"golang.org/x/image/font/gofont/goregular"
)

// Toolbar is the ebitenui hint bar pinned to the top of the surface while
// interactive mode is active: gesture hints, a live geometry readout and the
// mute/hide buttons.
type Toolbar struct {
	UI *ebitenui.UI

	// Callbacks
	OnHide func()
	OnMute func()

	geomLabel  *widget.Label
	muteButton *widget.Button

	// Fonts (stored as interface for ebitenui compatibility)
	normalFace text.Face
	smallFace  text.Face
}

// NewToolbar builds the interactive-mode toolbar.
func NewToolbar(onHide, onMute func()) *Toolbar {
	tb := &Toolbar{
		OnHide: onHide,
		OnMute: onMute,
	}

	tb.loadFonts()
	tb.buildUI()

	return tb
}

func (tb *Toolbar) loadFonts() {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic(err)
	}

	tb.normalFace = &text.GoTextFace{
		Source: fontSource,
		Size:   12,
	}
	tb.smallFace = &text.GoTextFace{
		Source: fontSource,
		Size:   10,
	}
}

func (tb *Toolbar) buildUI() {
	// Root container anchors the bar to the top edge; the rest of the
	// surface stays free for the shelf.
	rootContainer := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	barContainer := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(cfg.UI.ToolbarBg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(4)),
			widget.RowLayoutOpts.Spacing(10),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
			}),
		),
	)

	hintLabel := widget.NewLabel(
		widget.LabelOpts.Text(cfg.UI.ToolbarHint, &tb.normalFace, &widget.LabelColor{
			Idle: cfg.UI.ToolbarText,
		}),
	)
	barContainer.AddChild(hintLabel)

	tb.geomLabel = widget.NewLabel(
		widget.LabelOpts.Text("", &tb.smallFace, &widget.LabelColor{
			Idle: cfg.UI.ToolbarText,
		}),
	)
	barContainer.AddChild(tb.geomLabel)

	tb.muteButton = widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 18)),
		widget.ButtonOpts.Image(tb.buttonImage()),
		widget.ButtonOpts.Text("Mute", &tb.smallFace, &widget.ButtonTextColor{
			Idle:    cfg.UI.ToolbarText,
			Hover:   cfg.White,
			Pressed: cfg.UI.ToolbarText,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if tb.OnMute != nil {
				tb.OnMute()
			}
		}),
	)
	barContainer.AddChild(tb.muteButton)

	hideButton := widget.NewButton(
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 18)),
		widget.ButtonOpts.Image(tb.buttonImage()),
		widget.ButtonOpts.Text("Hide", &tb.smallFace, &widget.ButtonTextColor{
			Idle:    cfg.UI.ToolbarText,
			Hover:   cfg.White,
			Pressed: cfg.UI.ToolbarText,
		}),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if tb.OnHide != nil {
				tb.OnHide()
			}
		}),
	)
	barContainer.AddChild(hideButton)

	rootContainer.AddChild(barContainer)

	tb.UI = &ebitenui.UI{
		Container: rootContainer,
	}
}

func (tb *Toolbar) buttonImage() *widget.ButtonImage {
	idle := image.NewNineSliceColor(cfg.UI.ButtonIdle)
	hover := image.NewNineSliceColor(cfg.UI.ButtonHover)
	pressed := image.NewNineSliceColor(cfg.UI.ButtonPressed)

	return &widget.ButtonImage{
		Idle:    idle,
		Hover:   hover,
		Pressed: pressed,
	}
}

// SetGeometry refreshes the readout in the bar.
func (tb *Toolbar) SetGeometry(x, y, w, h int) {
	if tb.geomLabel != nil {
		tb.geomLabel.Label = fmt.Sprintf(cfg.UI.ToolbarGeomFmt, w, h, x, y)
	}
}

// SetMuted flips the mute button caption.
func (tb *Toolbar) SetMuted(muted bool) {
	if tb.muteButton == nil {
		return
	}
	if textWidget := tb.muteButton.Text(); textWidget != nil {
		if muted {
			textWidget.Label = "Unmute"
		} else {
			textWidget.Label = "Mute"
		}
	}
}

// Update advances the UI's widget state
func (tb *Toolbar) Update() {
	tb.UI.Update()
}

// Draw renders the toolbar
func (tb *Toolbar) Draw(screen *ebiten.Image) {
	tb.UI.Draw(screen)
}
