package model

type Theater struct {
	Id      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Screen types form a closed set on the backend.
const (
	ScreenRegular = "REGULAR"
	ScreenLarge   = "LARGE_FORMAT"
	ScreenStereo  = "STEREOSCOPIC"
	ScreenPremium = "PREMIUM"
)

var ScreenTypes = []string{ScreenRegular, ScreenLarge, ScreenStereo, ScreenPremium}

type Screen struct {
	Id         int64  `json:"id"`
	Name       string `json:"name"`
	ScreenType string `json:"screenType"`
	TheaterId  int64  `json:"theaterId"`
}
