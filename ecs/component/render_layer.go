package component

// RenderLayer is used to sort draw order deterministically.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()

// Parallax scrolls a background with the camera scaled by Weight in [0,1].
// Zero pins it to the screen, one moves it with the world.
type Parallax struct {
	Weight float64
}

var ParallaxComponent = NewComponent[Parallax]()
