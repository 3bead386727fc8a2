package service

// Services groups what the HTTP handlers call into.
type Services struct {
	PeerService    PeerService
	AppInfoService AppInfoService
}

func NewServices(peer PeerService, appInfo AppInfoService) *Services {
	return &Services{
		PeerService:    peer,
		AppInfoService: appInfo,
	}
}
