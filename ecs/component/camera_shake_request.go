package component

// CameraShakeRequest asks the camera system to add trauma. Requests on the
// same entity accumulate until the camera consumes them.
type CameraShakeRequest struct {
	Trauma float64
}

var CameraShakeRequestComponent = NewComponent[CameraShakeRequest]()
