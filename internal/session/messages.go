package session

// User-facing text. The remote API and its users are Taiwanese, so every
// string shown in a front end is Traditional Chinese.
const (
	PlaceholderSearchFirst  = "-- 請先搜尋路線 --"
	PlaceholderLoading      = "-- 載入中... --"
	PlaceholderChooseRoute  = "-- 請選擇路線班次 --"
	PlaceholderNoRoutes     = "-- 無可用路線 --"
	PlaceholderRoutesFailed = "-- 載入路線失敗 --"
	PlaceholderRouteFirst   = "-- 請先選擇路線 --"
	PlaceholderChooseBus    = "-- 請選擇公車 --"
	PlaceholderNoBuses      = "-- 無可用公車 --"
	PlaceholderBusesFailed  = "-- 載入公車失敗 --"

	TextEnterKeyword       = "請輸入路線關鍵字"
	TextNoRoutesFormat     = "找不到關鍵字 \"%s\" 的路線資訊 (TDX)。"
	TextRoutesErrorPrefix  = "載入路線時發生錯誤: "
	TextRoutesHTTP         = "無法載入路線列表"
	TextRouteFormatError   = "選擇的路線資料格式錯誤。"
	TextNoBuses            = "此路線目前沒有符合條件的公車在線上。"
	TextBusesErrorPrefix   = "載入公車資料時發生錯誤: "
	TextBusesHTTP          = "無法載入公車列表"
	TextEtaNoRoute         = "無法讀取所選路線資訊以查詢ETA: 請先選擇路線。"
	TextEtaIncompleteRoute = "路線或方向資訊不完整。"
	TextEtaNoBus           = "請先選擇公車。"
	TextEtaErrorPrefix     = "無法取得預估到站時間: "
	TextEtaHTTP            = "無法取得預估到站時間"
	TextNoUpcomingStops    = "目前無此公車後續停靠站的預估時間。"
	TextUnknownStop        = "未知"
	TextNotAvailable       = "N/A"
)
