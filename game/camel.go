package game

// Camel identifies one of the racing camels. A camel has no intrinsic state;
// its position and stacking live on the Board.
type Camel string

// StandardCamels are the five racing camels from the standard box.
var StandardCamels = []Camel{"Red", "Blue", "Green", "Yellow", "Purple"}

// StandardTrackLength is the index of the finish cell on the standard track.
const StandardTrackLength = 16
