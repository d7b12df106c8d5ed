package codec

import (
	"go.trai.ch/railfare/internal/core/domain"
	"go.trai.ch/zerr"
)

// TicketPayload is the data object of a ticket query response.
type TicketPayload struct {
	Result []string          `json:"result"`
	Map    map[string]string `json:"map"`
}

// DecodeTickets decodes every record of a ticket query. Decoding is record
// scoped: a record that fails is reported in errs and skipped, the rest of the
// batch is still returned.
func DecodeTickets(records []string, stations map[string]string, departDate string) ([]domain.TrainInfo, []error) {
	trains := make([]domain.TrainInfo, 0, len(records))
	var errs []error
	for i, raw := range records {
		rec, err := DecodeRecord(raw, stations)
		if err != nil {
			errs = append(errs, zerr.With(domain.Annotate(err, "record", i), "depart_date", departDate))
			continue
		}
		train, err := rec.TrainInfo(departDate)
		if err != nil {
			errs = append(errs, domain.Annotate(err, "record", i, "run_code", rec.RunCode))
			continue
		}
		trains = append(trains, train)
	}
	return trains, errs
}

// TrainInfo converts the record into an offering departing on departDate.
func (r *Record) TrainInfo(departDate string) (domain.TrainInfo, error) {
	tickets, err := r.Tickets()
	if err != nil {
		return domain.TrainInfo{}, err
	}
	return domain.TrainInfo{
		RunNumber:   r.RunNumber,
		RunCode:     r.RunCode,
		TrainDate:   domain.ExpandCompactDate(r.StartTrainDate),
		DepartDate:  departDate,
		StartCode:   r.StartCode,
		EndCode:     r.EndCode,
		FromStation: r.FromStation,
		FromCode:    r.FromCode,
		ToStation:   r.ToStation,
		ToCode:      r.ToCode,
		DepartTime:  r.DepartTime,
		ArriveTime:  r.ArriveTime,
		Duration:    r.Duration,
		Bookable:    r.CanWebBuy == "Y",
		Tickets:     tickets,
		FromStop:    &domain.StopInfo{StationName: r.FromStation, DepartTime: r.DepartTime},
		ToStop:      &domain.StopInfo{StationName: r.ToStation, ArriveTime: r.ArriveTime},
	}, nil
}

// Tickets prices every offered seat class. Classes without a matching price
// chunk are left out.
func (r *Record) Tickets() ([]domain.Ticket, error) {
	offered := r.Offered()
	tickets := make([]domain.Ticket, 0, len(offered))
	for _, a := range offered {
		sp, ok, err := DecodePrice(r.PriceBlob, a.Prefix())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		tickets = append(tickets, domain.Ticket{
			SeatType: sp.Label,
			SeatCode: sp.Code,
			Price:    sp.Price,
			Stock:    a.Stock,
		})
	}
	return tickets, nil
}
