package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/cupcake/scene"
)

// Banner and label captions.
const (
	bannerPrompt = "fill up the cupcake for iq 120+"
	bannerGoal   = "great job! iq 120+ reached!"
	textTryAgain = "try again"
	textWellDone = "well done"
)

// board is the game layer: everything shown while the puzzle is played.
type board struct {
	layer      *scene.Node
	cupcake    *scene.Node
	grid       *scene.Node
	flashes    *scene.Node
	redFill    *scene.Node
	banner     *scene.Node
	bannerText *scene.Node
	score      *scene.Node
	feedback   *scene.Node
	effects    *scene.Node
	hint       *scene.Node
	pieces     map[int]*scene.Node
	labels     map[int]*scene.Node
}

// buildBoard creates the game layer. Piece ids are 1..len(origins) and the
// pieces start at their origins; the session repositions them.
func buildBoard(l Layout, a *Assets, pointValue int, pieceCount int) *board {
	b := &board{
		layer:  scene.NewContainer("game"),
		pieces: make(map[int]*scene.Node, pieceCount),
		labels: make(map[int]*scene.Node, pieceCount),
	}
	b.layer.Interactable = true

	bg := fullScreen("background", a.Background, colorBackground, l)
	bg.ZIndex = zBackground
	b.layer.AddChild(bg)

	center := l.GridCenter()
	b.cupcake = scene.NewContainer("cupcake")
	b.cupcake.SetPosition(center.X, center.Y)
	b.cupcake.ZIndex = zCupcake
	b.layer.AddChild(b.cupcake)

	if a.RedFill != nil {
		b.redFill = scene.NewImage("red_fill", a.RedFill)
	} else {
		b.redFill = centeredRect("red_fill", cupcakeW, cupcakeH, colorRedFill)
		b.redFill.Alpha = 0.5
	}
	b.redFill.ZIndex = zRedFill
	b.redFill.Visible = false
	b.cupcake.AddChild(b.redFill)

	var cupcakeBg *scene.Node
	if a.CupcakeBg != nil {
		cupcakeBg = scene.NewImage("cupcake_bg", a.CupcakeBg)
	} else {
		cupcakeBg = centeredRect("cupcake_bg", cupcakeW, cupcakeH, colorCupcake)
	}
	cupcakeBg.ZIndex = zCupcakeBg
	b.cupcake.AddChild(cupcakeBg)

	b.grid = scene.NewContainer("grid")
	b.grid.ZIndex = zGrid
	b.cupcake.AddChild(b.grid)
	b.flashes = scene.NewContainer("flashes")
	b.grid.AddChild(b.flashes)

	bp := l.BannerPos()
	b.banner = scene.NewImage("banner", stadiumImage(bannerW, bannerH))
	b.banner.SetPivot(0, 0)
	b.banner.SetPosition(bp.X, bp.Y)
	b.banner.Color = colorBanner
	b.banner.Alpha = 0.7
	b.banner.ZIndex = zBanner
	b.layer.AddChild(b.banner)

	tp := l.BannerTextPos()
	b.bannerText = scene.NewText("banner_text", bannerPrompt, a.fontSize(28))
	b.bannerText.SetPosition(tp.X, tp.Y)
	b.bannerText.ZIndex = zBannerText
	b.layer.AddChild(b.bannerText)

	sp := l.ScorePos()
	b.score = scene.NewText("score", "", a.fontSize(72))
	b.score.SetPosition(sp.X, sp.Y)
	b.score.ZIndex = zBannerText
	b.layer.AddChild(b.score)

	for i := 0; i < pieceCount; i++ {
		id := i + 1
		var img *ebiten.Image
		if i < len(a.Figures) {
			img = a.Figures[i]
		}
		p, label := buildPiece(id, i, img, a, pointValue)
		b.pieces[id] = p
		b.labels[id] = label
		b.layer.AddChild(p)
	}

	if a.Hand != nil {
		b.hint = scene.NewImage("hint", a.Hand)
		w, h := b.hint.Size()
		b.hint.SetPivot(w*0.2, h*0.2)
	} else {
		b.hint = scene.NewCircle("hint", hintRadius, scene.ColorWhite)
	}
	b.hint.ZIndex = zHint
	b.hint.Visible = false
	b.layer.AddChild(b.hint)

	b.effects = scene.NewContainer("effects")
	b.effects.ZIndex = zEffects
	b.layer.AddChild(b.effects)

	fp := l.FeedbackPos()
	b.feedback = scene.NewText("feedback", "", a.fontSize(60))
	b.feedback.Text.OutlineWidth = 6
	b.feedback.Text.OutlineColor = colorBlack
	b.feedback.SetPosition(fp.X, fp.Y)
	b.feedback.ZIndex = zEffects
	b.feedback.Visible = false
	b.layer.AddChild(b.feedback)

	return b
}

// buildPiece creates the draggable container for piece id: its figure (or
// a numbered disc) and the "N pts" label underneath.
func buildPiece(id, index int, img *ebiten.Image, a *Assets, pointValue int) (node, label *scene.Node) {
	node = scene.NewContainer(fmt.Sprintf("piece_%d", id))
	node.Interactable = true
	node.EntityID = uint32(id)
	node.UserData = id

	var w, h float64
	if img != nil {
		sprite := scene.NewImage("figure", img)
		w, h = sprite.Size()
		node.AddChild(sprite)
	} else {
		disc := scene.NewCircle("figure", pieceRadius, piecePalette[index%len(piecePalette)])
		w, h = disc.Size()
		node.AddChild(disc)
		num := scene.NewText("number", fmt.Sprint(id), a.fontSize(40))
		node.AddChild(num)
	}
	node.HitShape = scene.HitRect{X: -w / 2, Y: -h / 2, Width: w, Height: h}

	label = scene.NewText("points", fmt.Sprintf("%d pts", pointValue), a.fontSize(20))
	label.Text.OutlineWidth = 3
	label.Text.OutlineColor = colorBlack
	label.SetPosition(0, h/2+20)
	node.AddChild(label)
	return node, label
}

// fullScreen stretches img over the screen, or fills it with c.
func fullScreen(name string, img *ebiten.Image, c scene.Color, l Layout) *scene.Node {
	if img == nil {
		return scene.NewRect(name, l.W, l.H, c)
	}
	n := scene.NewImage(name, img)
	n.Width, n.Height = l.W, l.H
	n.SetPivot(0, 0)
	return n
}

// centeredRect creates a w by h rectangle centered on its position.
func centeredRect(name string, w, h float64, c scene.Color) *scene.Node {
	n := scene.NewRect(name, w, h, c)
	n.CenterPivot()
	return n
}

// stadiumImage draws a white rectangle with fully rounded ends. Tint it
// with the node color.
func stadiumImage(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	r := float32(h) / 2
	vector.DrawFilledRect(img, r, 0, float32(w)-2*r, float32(h), color.White, true)
	vector.DrawFilledCircle(img, r, r, r, color.White, true)
	vector.DrawFilledCircle(img, float32(w)-r, r, r, color.White, true)
	return img
}
