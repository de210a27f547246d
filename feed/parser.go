package feed

import (
	"strconv"
	"strings"

	"book-pricer/domain"

	"github.com/pkg/errors"
)

const (
	addFields    = 6 // <ts> A <id> <B|S> <price> <size>
	reduceFields = 4 // <ts> R <id> <size>
)

// ParseEvent parses one input line
//
//	28800538 A b S 44.26 100
//	28800744 R b 100
func ParseEvent(line string) (domain.Event, error) {
	var event domain.Event
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return event, errors.Wrapf(domain.ErrMalformedEvent, "expected at least 2 fields, got %d", len(parts))
	}

	switch parts[1] {
	case "A":
		event.Kind = domain.EventAdd
		if len(parts) != addFields {
			return event, errors.Wrapf(domain.ErrMalformedEvent, "add: expected %d fields, got %d", addFields, len(parts))
		}
	case "R":
		event.Kind = domain.EventReduce
		if len(parts) != reduceFields {
			return event, errors.Wrapf(domain.ErrMalformedEvent, "reduce: expected %d fields, got %d", reduceFields, len(parts))
		}
	default:
		return event, errors.Wrapf(domain.ErrMalformedEvent, "unknown event kind %q", parts[1])
	}

	ts, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return event, errors.Wrapf(domain.ErrMalformedEvent, "timestamp %q", parts[0])
	}
	event.Timestamp = ts
	event.OrderID = parts[2]

	sizeField := parts[3]
	if event.Kind == domain.EventAdd {
		switch parts[3] {
		case "B":
			event.Side = domain.SideBid
		case "S":
			event.Side = domain.SideAsk
		default:
			return event, errors.Wrapf(domain.ErrMalformedEvent, "unknown side %q", parts[3])
		}
		if event.Price, err = domain.ParseCents(parts[4]); err != nil {
			return event, err
		}
		sizeField = parts[5]
	}

	size, err := strconv.ParseInt(sizeField, 10, 64)
	if err != nil || size <= 0 {
		return event, errors.Wrapf(domain.ErrMalformedEvent, "size %q must be a positive integer", sizeField)
	}
	event.Size = size
	return event, nil
}
