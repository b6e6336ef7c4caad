package networking

import (
	"github.com/go-drift/postboard/pkg/core"
	"github.com/go-drift/postboard/pkg/widgets"
)

// NetworkingApp is the whole screen: the submitter above the lister.
// The two share the client and nothing else.
type NetworkingApp struct {
	core.StatelessBase
	Client       Client
	InitialLimit int
	RefreshLimit int
}

func (a NetworkingApp) Build(ctx core.BuildContext) core.Widget {
	var creator Creator
	var lister Lister
	if a.Client != nil {
		creator, lister = a.Client, a.Client
	}
	return widgets.ColumnOf(
		PostSubmitter{Client: creator},
		widgets.VSpace(SeparatorHeight),
		PostLister{
			Client:       lister,
			InitialLimit: a.InitialLimit,
			RefreshLimit: a.RefreshLimit,
		},
	)
}
