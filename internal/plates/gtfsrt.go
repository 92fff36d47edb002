package plates

import (
	"fmt"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

func DecodeFeed(data []byte) (*gtfs.FeedMessage, error) {
	feedMessage := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(data, feedMessage); err != nil {
		return nil, fmt.Errorf("decode gtfs-rt feed: %w", err)
	}
	return feedMessage, nil
}

// RecordsFromFeed maps every entity of a VehiclePositions feed to a record.
// Entities without a vehicle descriptor are malformed and map to nil; an
// empty license plate counts as absent.
func RecordsFromFeed(feedMessage *gtfs.FeedMessage) []*Record {
	records := make([]*Record, 0, len(feedMessage.GetEntity()))
	for _, entity := range feedMessage.GetEntity() {
		descriptor := entity.GetVehicle().GetVehicle()
		if descriptor == nil {
			records = append(records, nil)
			continue
		}

		plate := descriptor.GetLicensePlate()
		if plate == "" {
			records = append(records, &Record{})
			continue
		}
		records = append(records, &Record{PlateNumb: &plate})
	}
	return records
}

// DumpFeed renders a feed as indented protojson.
func DumpFeed(message proto.Message) (string, error) {
	options := protojson.MarshalOptions{Multiline: true}
	jsonBytes, err := options.Marshal(message)
	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
