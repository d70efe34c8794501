package servicedef

// ServiceInfo is the optional metadata a search server returns from its root resource.
type ServiceInfo struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func (s ServiceInfo) IsEmpty() bool {
	return s == ServiceInfo{}
}
