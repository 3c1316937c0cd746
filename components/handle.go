package components

import (
	"github.com/leo110047/ODANGO/stage"
	"github.com/yohamta/donburi"
)

type HandleData struct {
	*stage.Handle
}

var Handle = donburi.NewComponentType[HandleData]()
