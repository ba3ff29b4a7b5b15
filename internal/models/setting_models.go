package models

// ShopSettings holds the shop identity fields printed on receipt and
// report headers. Inert configuration, read-only for the core logic.
type ShopSettings struct {
	SchoolName    string `json:"schoolName"`
	SchoolAddress string `json:"schoolAddress"`
	PrincipalName string `json:"principalName"`
	ManagerName   string `json:"managerName"`
}

// DefaultShopSettings returns the settings used until an operator saves
// their own.
func DefaultShopSettings() ShopSettings {
	return ShopSettings{
		SchoolName:    "SMK GLOBIN",
		SchoolAddress: "Jl. Cibeureum Tengah RT.06/01 Ds. Sinarsari",
		PrincipalName: "Saepullah, S.Kom.",
		ManagerName:   "Sari Maya, S.Pd., Gr.",
	}
}
