package domain

import "fmt"

// NeighborNotification tells the holder of an adjacent seat that the
// passenger next to them is cancelling. It is advisory only.
type NeighborNotification struct {
	TripID       string     `json:"trip_id"`
	NeighborSeat int        `json:"neighbor_seat"`
	Neighbor     *Passenger `json:"neighbor"`
	CanceledSeat int        `json:"canceled_seat"`
	Canceler     *Passenger `json:"canceler"`
}

func (n NeighborNotification) Message() string {
	return fmt.Sprintf("Notification to %s (ID: %s, Seat %d): Your neighbor in seat %d (%s) has canceled their booking.",
		n.Neighbor.Name, n.Neighbor.ID, n.NeighborSeat, n.CanceledSeat, n.Canceler.Name)
}
