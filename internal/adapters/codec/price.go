package codec

import (
	"strconv"

	"go.trai.ch/railfare/internal/core/domain"
)

const (
	chunkWidth = 10

	// noSeatFlag is the trailing flag value from which a chunk denotes standing tickets.
	noSeatFlag = 3000

	// PrefixOther is the catch-all seat class prefix.
	PrefixOther = "QT_"
	// PrefixNoSeat is the standing ticket prefix.
	PrefixNoSeat = "WZ_"

	// LabelOther is the label of seats that match no known class code.
	LabelOther = "其他席位"
	// LabelNoSeat is the label of standing tickets.
	LabelNoSeat = "无座"
)

var seatTable = map[string]map[byte]string{
	"SWZ_":  {'9': "商务座"},
	"TZ_":   {'P': "特等座"},
	"ZY_":   {'M': "一等座"},
	"ZE_":   {'O': "二等座", 'S': "二等包座"},
	"GR_":   {'6': "高级软卧", 'A': "高级动卧"},
	"RW_":   {'4': "软卧", 'I': "一等卧"},
	"SRRB_": {'F': "动卧"},
	"YW_":   {'3': "硬卧", 'J': "二等卧"},
	"RZ_":   {'2': "软座"},
	"YZ_":   {'1': "硬座"},
	"WZ_":   {},
	"GG_":   {'D': "优选一等座"},
	"QT_":   {},
}

// SeatPrice is the price of one seat class decoded from a packed blob.
type SeatPrice struct {
	Label string
	Code  string
	Price domain.Price
}

// SeatLabel returns the label the price table assigns to code under prefix.
func SeatLabel(prefix string, code byte) (string, bool) {
	label, ok := seatTable[prefix][code]
	return label, ok
}

// DecodePrice scans the packed price blob for the first chunk that belongs to
// the seat class prefix. Each chunk is one class code character, a five digit
// price in tenths of a yuan and a four digit flag. ok is false when no chunk
// matches.
func DecodePrice(blob, prefix string) (SeatPrice, bool, error) {
	if len(blob)%chunkWidth != 0 {
		return SeatPrice{}, false, domain.Annotate(domain.ErrDecodePrice, "length", len(blob))
	}
	table, known := seatTable[prefix]
	if !known {
		return SeatPrice{}, false, nil
	}

	for off := 0; off < len(blob); off += chunkWidth {
		chunk := blob[off : off+chunkWidth]
		code := chunk[0]
		tenths, err := strconv.ParseInt(chunk[1:6], 10, 64)
		if err != nil {
			return SeatPrice{}, false, domain.Annotate(domain.ErrDecodePrice, "chunk", chunk)
		}
		flag, err := strconv.Atoi(chunk[6:10])
		if err != nil {
			return SeatPrice{}, false, domain.Annotate(domain.ErrDecodePrice, "chunk", chunk)
		}
		price := domain.PriceFromTenths(tenths)

		label, hit := table[code]
		if prefix == PrefixOther && !hit && flag < noSeatFlag {
			return SeatPrice{Label: LabelOther, Code: string(code), Price: price}, true, nil
		}
		if hit {
			return SeatPrice{Label: label, Code: string(code), Price: price}, true, nil
		}
		if prefix == PrefixNoSeat && flag >= noSeatFlag {
			return SeatPrice{Label: LabelNoSeat, Code: string(code), Price: price}, true, nil
		}
	}
	return SeatPrice{}, false, nil
}
