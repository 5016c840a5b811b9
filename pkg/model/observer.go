package model

import "fmt"

// SaleObserver is told the net total of every completed sale.
type SaleObserver interface {
	OnSaleCompleted(netTotal Amount) error
	OnError(err error)
}

type ObserverError struct {
	Index int
	Err   error
}

func (e ObserverError) Error() string {
	return fmt.Sprintf("sale observer %d failed: %v", e.Index, e.Err)
}

func (e ObserverError) Unwrap() error {
	return e.Err
}

// SaleObservers notifies in registration order.
type SaleObservers []SaleObserver

// NotifySaleCompleted stops at the first failing observer. That observer gets
// OnError before the failure is returned; later observers are not notified.
func (observers SaleObservers) NotifySaleCompleted(netTotal Amount) error {
	for i, observer := range observers {
		if err := observer.OnSaleCompleted(netTotal); err != nil {
			observer.OnError(err)
			return ObserverError{Index: i, Err: err}
		}
	}
	return nil
}
