package response_models

type KindCount struct {
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Published int64  `json:"published"`
	Draft     int64  `json:"draft"`
}

type DashboardReport struct {
	Packages         []KindCount `json:"packages"`
	TotalPackages    int64       `json:"total_packages"`
	Articles         int64       `json:"articles"`
	ConfirmedUsers   int64       `json:"confirmed_users"`
	UnconfirmedUsers int64       `json:"unconfirmed_users"`
}
