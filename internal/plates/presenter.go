package plates

const (
	TextLoading         = "正在讀取車牌號碼..."
	TextNoPlates        = "沒有符合條件的車牌可顯示。"
	TextLoadErrorPrefix = "無法讀取車牌資料: "
)

// ListView is what the plate page shows: either a selection of plates or a
// single message.
type ListView struct {
	Plates  []string
	Message string
	IsError bool
	Loading bool
}

func (view ListView) HasPlates() bool {
	return len(view.Plates) > 0
}

func LoadingView() ListView {
	return ListView{Message: TextLoading, Loading: true}
}

// Present never fails. A load error becomes the message.
func Present(plates []string, err error) ListView {
	if err != nil {
		return ListView{Message: TextLoadErrorPrefix + err.Error(), IsError: true}
	}
	if len(plates) == 0 {
		return ListView{Message: TextNoPlates}
	}
	return ListView{Plates: plates}
}
