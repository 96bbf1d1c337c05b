package iceportal

type Status struct {
	Connection   bool    `json:"connection"`
	ServiceLevel string  `json:"serviceLevel"`
	GPSStatus    string  `json:"gpsStatus"`
	Internet     string  `json:"internet"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ServerTime   int64   `json:"serverTime"`
	// Speed in km/h
	Speed        float64             `json:"speed"`
	TrainType    string              `json:"trainType"`
	Tzn          string              `json:"tzn"`
	WagonClass   string              `json:"wagonClass"`
	Series       string              `json:"series"`
	BapInstalled bool                `json:"bapInstalled"`
	Connectivity *StatusConnectivity `json:"connectivity"`
}

type StatusConnectivity struct {
	CurrentState         string `json:"currentState"`
	NextState            string `json:"nextState"`
	RemainingTimeSeconds *int64 `json:"remainingTimeSeconds"`
}

type TripInfo struct {
	Trip Trip `json:"trip"`
}

type Trip struct {
	TripDate  string `json:"tripDate"`
	TrainType string `json:"trainType"`
	Vzn       string `json:"vzn"`
	// Distance in meters from the origin to the last stop passed
	ActualPosition       float64  `json:"actualPosition"`
	DistanceFromLastStop float64  `json:"distanceFromLastStop"`
	TotalDistance        float64  `json:"totalDistance"`
	StopInfo             StopInfo `json:"stopInfo"`
	Stops                []Stop   `json:"stops"`
}

type StopInfo struct {
	ScheduledNext     string `json:"scheduledNext"`
	ActualNext        string `json:"actualNext"`
	ActualLast        string `json:"actualLast"`
	ActualLastStarted string `json:"actualLastStarted"`
	FinalStationName  string `json:"finalStationName"`
	FinalStationEvaNr string `json:"finalStationEvaNr"`
}

type Stop struct {
	Station      StopStation   `json:"station"`
	Timetable    Timetable     `json:"timetable"`
	Track        Track         `json:"track"`
	Info         StopDetails   `json:"info"`
	DelayReasons []DelayReason `json:"delayReasons"`
}

type StopStation struct {
	EvaNr          string          `json:"evaNr"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	Geocoordinates *Geocoordinates `json:"geocoordinates"`
}

type Geocoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Timetable times are unix timestamps in milliseconds
type Timetable struct {
	ScheduledArrivalTime   *int64 `json:"scheduledArrivalTime"`
	ActualArrivalTime      *int64 `json:"actualArrivalTime"`
	ArrivalDelay           string `json:"arrivalDelay"`
	ScheduledDepartureTime *int64 `json:"scheduledDepartureTime"`
	ActualDepartureTime    *int64 `json:"actualDepartureTime"`
	DepartureDelay         string `json:"departureDelay"`
}

type Track struct {
	Scheduled string `json:"scheduled"`
	Actual    string `json:"actual"`
}

type StopDetails struct {
	Status            int     `json:"status"`
	Passed            bool    `json:"passed"`
	PositionStatus    string  `json:"positionStatus"`
	Distance          float64 `json:"distance"`
	DistanceFromStart float64 `json:"distanceFromStart"`
}

type DelayReason struct {
	Code string `json:"code"`
	Text string `json:"text"`
}

type ConnectionsResponse struct {
	Connections []Connection `json:"connections"`
}

type Connection struct {
	TrainType   string      `json:"trainType"`
	Vzn         string      `json:"vzn"`
	TrainNumber string      `json:"trainNumber"`
	Station     StopStation `json:"station"`
	Timetable   Timetable   `json:"timetable"`
	Track       Track       `json:"track"`
}

type BAPServiceStatus struct {
	Status bool `json:"status"`
}
