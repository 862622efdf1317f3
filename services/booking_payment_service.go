package services

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"

	"github.com/it-Portal2/hotel-sultan-palace-sub006/live"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/models"
	"github.com/it-Portal2/hotel-sultan-palace-sub006/utils"
)

// BookingPaymentService creates Snap transactions for booking deposits
// and settles them from gateway callbacks.
type BookingPaymentService struct {
	db         *gorm.DB
	snapClient snap.Client
	serverKey  string
}

func NewBookingPaymentService(db *gorm.DB) *BookingPaymentService {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(serverKey, env)

	return &BookingPaymentService{
		db:         db,
		snapClient: client,
		serverKey:  serverKey,
	}
}

// CreateDepositPayment opens a pending payment for a booking and
// requests a Snap token for it.
func (s *BookingPaymentService) CreateDepositPayment(booking *models.Booking) (*models.Payment, error) {
	expiry := time.Now().Add(24 * time.Hour)
	payment := models.Payment{
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		Status:    models.PaymentPending,
		ExpiresAt: &expiry,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, err
	}

	gatewayRef := fmt.Sprintf("%s-PAY-%d", booking.Reference, payment.ID)
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  gatewayRef,
			GrossAmt: int64(booking.TotalAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: booking.GuestName,
			Email: booking.GuestEmail,
			Phone: booking.GuestPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    booking.Reference,
				Price: int64(booking.TotalAmount),
				Qty:   1,
				Name:  "Room booking deposit",
			},
		},
	}

	resp, midErr := s.snapClient.CreateTransaction(req)
	if midErr != nil {
		return nil, fmt.Errorf("snap transaction failed: %s", midErr.Message)
	}

	payment.GatewayRef = gatewayRef
	payment.SnapToken = resp.Token
	payment.RedirectURL = resp.RedirectURL
	if err := s.db.Save(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

// VerifySignature checks the sha512 signature on a gateway callback.
func (s *BookingPaymentService) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	hash := sha512.Sum512([]byte(orderID + statusCode + grossAmount + s.serverKey))
	return hex.EncodeToString(hash[:]) == signature
}

// Settle marks a payment with the gateway outcome. A settlement also
// confirms the booking and emails the guest.
func (s *BookingPaymentService) Settle(gatewayRef, transactionStatus, paymentMethod string) (*models.Payment, error) {
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gateway_ref = ?", gatewayRef).First(&payment).Error; err != nil {
			return err
		}

		switch transactionStatus {
		case "settlement", "capture":
			now := time.Now()
			payment.Status = models.PaymentSuccess
			payment.PaidAt = &now
			payment.PaymentMethod = paymentMethod
		case "expire":
			payment.Status = models.PaymentExpired
		case "cancel", "deny":
			payment.Status = models.PaymentCancelled
		default:
			// pending and unknown statuses leave the row untouched
			return nil
		}
		payment.UpdatedAt = time.Now()
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if payment.Status != models.PaymentSuccess {
			return nil
		}

		var booking models.Booking
		if err := tx.First(&booking, payment.BookingID).Error; err != nil {
			return err
		}
		if booking.Status == models.BookingPending {
			booking.Status = models.BookingConfirmed
			booking.UpdatedAt = time.Now()
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	live.BroadcastPaymentUpdate(payment)

	if payment.Status == models.PaymentSuccess {
		var booking models.Booking
		if err := s.db.First(&booking, payment.BookingID).Error; err == nil {
			go SendBookingConfirmationEmail(booking)
		}
	}

	return &payment, nil
}

// StartTimeoutChecker expires pending payments past their deadline.
func (s *BookingPaymentService) StartTimeoutChecker() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			if err := s.db.Model(&models.Payment{}).
				Where("status = ? AND expires_at < ?", models.PaymentPending, time.Now()).
				Update("status", models.PaymentExpired).Error; err != nil {
				log.Printf("Payment timeout sweep failed: %v", err)
			}
		}
	}()
}

// SendBookingConfirmationEmail emails the guest that their booking is
// confirmed. Best effort: failures are logged, never surfaced.
func SendBookingConfirmationEmail(booking models.Booking) {
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your booking <b>%s</b> is confirmed for %s to %s. Total: %s.</p><p>Hotel Sultan Palace</p>",
		booking.GuestName,
		booking.Reference,
		booking.CheckInDate.Format("02 Jan 2006"),
		booking.CheckOutDate.Format("02 Jan 2006"),
		utils.FormatCurrencyINR(booking.TotalAmount),
	)
	if err := utils.SendMail(booking.GuestEmail, "Booking confirmed - "+booking.Reference, body); err != nil {
		log.Printf("Failed to send confirmation email for %s: %v", booking.Reference, err)
	}
}
