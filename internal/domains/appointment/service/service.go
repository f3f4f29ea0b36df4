package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Appointment=MockAppointmentService,CouponFinder=MockCouponFinder

import (
	"context"
	"fmt"
	"net/http"

	"labbook/config"
	"labbook/infras/kafka"
	"labbook/infras/otel"
	"labbook/infras/postgres"
	"labbook/infras/s3"
	"labbook/internal/domains/appointment/model"
	"labbook/internal/domains/appointment/model/dto"
	"labbook/internal/domains/appointment/repository"
	"labbook/internal/domains/pricing"
	testModel "labbook/internal/domains/test/model"
	testService "labbook/internal/domains/test/service"
	"labbook/shared"
	"labbook/shared/cache"
	"labbook/shared/constant"
	gDto "labbook/shared/dto"
	"labbook/shared/failure"
	"labbook/shared/metrics"
	"labbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const reportDirectory = "report"

// CouponFinder resolves the coupon code a customer books with.
type CouponFinder interface {
	FindCoupon(ctx context.Context, code string) (*pricing.Coupon, error)
}

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	MarkDelivered(ctx context.Context, id string, req dto.MarkDeliveredRequest) error
	Cancel(ctx context.Context, id string) (dto.CancelledAppointmentResponse, error)
	GetCancelled(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCancelledAppointmentsResponse, error)
}

type serviceImpl struct {
	repo          repository.Appointment
	cancelledRepo repository.Cancelled
	inventory     testService.Inventory
	coupons       CouponFinder
	transactor    postgres.Transactor
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
	s3            s3.S3
	kafka         kafka.Client
}

func New(
	repo repository.Appointment,
	cancelledRepo repository.Cancelled,
	inventory testService.Inventory,
	coupons CouponFinder,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	kafka kafka.Client,
) Appointment {
	return &serviceImpl{
		repo:          repo,
		cancelledRepo: cancelledRepo,
		inventory:     inventory,
		coupons:       coupons,
		transactor:    transactor,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
		s3:            s3,
		kafka:         kafka,
	}
}

// Create reserves a slot and records a pending appointment in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if email == constant.Empty {
		return res, failure.Unauthorized("missing customer identity")
	}

	coupon, err := s.coupons.FindCoupon(ctx, req.Coupon)
	if err != nil {
		return res, fmt.Errorf("failed to look up coupon: %w", err)
	}

	var appointment model.Appointment

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		test, err := s.inventory.Reserve(ctx, tx, req.ServiceID)
		if err != nil {
			return err
		}

		if !test.Price.Equal(req.Price) {
			return failure.BadRequestFromString("price does not match the current test price")
		}

		appointment = req.ToModel(email, s.cfg.Booking.Currency, test, coupon, timezone.Now())

		return s.repo.InsertTx(ctx, tx, appointment)
	})
	if err != nil {
		recordRejection(err)
		log.Error().Err(err).Str("serviceID", req.ServiceID).Msg("failed to book appointment")

		return res, err
	}

	metrics.AppointmentsBooked.Inc()
	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, testModel.CachePrefix)
		shared.InvalidateCaches(c, s.cache, constant.CachePrefixStatistics)
		s.publish(c, model.NewEvent(model.EventBooked, appointment, timezone.Now()))
	}()

	return res, nil
}

func recordRejection(err error) {
	switch {
	case failure.IsSlotExhausted(err):
		metrics.BookingRejections.WithLabelValues(metrics.ReasonSlotExhausted).Inc()
	case failure.GetCode(err) == http.StatusNotFound:
		metrics.BookingRejections.WithLabelValues(metrics.ReasonNotFound).Inc()
	case failure.GetCode(err) == http.StatusBadRequest:
		metrics.BookingRejections.WithLabelValues(metrics.ReasonPriceMismatch).Inc()
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == constant.Empty || req.SortBy == constant.DefaultValueSortBy {
		req.SortBy = model.FieldBookingTime
	}

	if req.SortDir == constant.Empty {
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, _, err := ownedBy(ctx, id)
	if err != nil {
		return res, err
	}

	appointment, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found")
	}

	res.FromModel(appointment)

	return res, nil
}

// MarkDelivered moves a pending appointment to delivered and attaches the result link.
func (s *serviceImpl) MarkDelivered(ctx context.Context, id string, req dto.MarkDeliveredRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.MarkDelivered")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Link == constant.Empty && req.Report == nil {
		return failure.BadRequestFromString("either link or report is required")
	}

	if err = s.checkReport(req); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	link := req.Link
	uploaded := false

	if req.Report != nil {
		link, err = s.s3.UploadFile(ctx, reportDirectory, req.ReportFile, req.Report, shared.NewObjectName(req.Report.Filename))
		if err != nil {
			log.Error().Err(err).Msg("failed to upload report")

			return fmt.Errorf("failed to upload report: %w", err)
		}

		uploaded = true
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	shared.AppendEq(&filter, model.FieldStatus, model.StatusPending, model.TableName)

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus:        model.StatusDelivered,
		model.FieldLink:          link,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err == nil && affected == 0 {
		err = s.deliveryConflict(ctx, id)
	}

	if err != nil {
		if uploaded {
			s.deleteReport(ctx, link)
		}

		return err
	}

	metrics.AppointmentsDelivered.Inc()

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixStatistics)
		s.publish(c, model.Event{
			Type:          model.EventDelivered,
			AppointmentID: id,
			Status:        model.StatusDelivered,
			Actor:         user,
			OccurredAt:    timezone.Now(),
		})
	}()

	return nil
}

// checkReport rejects a report header without content and reports above the configured size.
func (s *serviceImpl) checkReport(req dto.MarkDeliveredRequest) error {
	if req.Report == nil {
		return nil
	}

	if req.ReportFile == nil {
		return failure.BadRequestFromString("report must be uploaded as multipart form data")
	}

	if limit := s.cfg.Booking.ReportMaxSizeMB; limit > 0 && req.Report.Size > int64(limit)*constant.BytesPerMB {
		return failure.BadRequestFromString(fmt.Sprintf("report must not exceed %d MB", limit))
	}

	return nil
}

// deliveryConflict explains why the conditional delivery update matched no row.
func (s *serviceImpl) deliveryConflict(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check appointment existence")

		return fmt.Errorf("failed to check appointment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("appointment not found")
	}

	return failure.Conflict("appointment already delivered")
}

func (s *serviceImpl) deleteReport(ctx context.Context, url string) {
	objectKey := s.s3.GetObjectKeyFromURL(url)
	if objectKey == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		log.Error().Err(err).Str("objectKey", objectKey).Msg("failed to delete report")
	}
}

// Cancel deletes a pending appointment and records a refund in the same transaction.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.CancelledAppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter, actor, err := ownedBy(ctx, id)
	if err != nil {
		return res, err
	}

	var (
		appointment model.Appointment
		cancelled   model.CancelledAppointment
	)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		locked, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if locked.ID == constant.Empty {
			return failure.NotFound("appointment not found")
		}

		if locked.Status == model.StatusDelivered {
			return failure.Conflict("delivered appointments cannot be cancelled")
		}

		appointment = locked

		if _, err = s.repo.DeleteCountTx(ctx, tx, shared.FilterByID(appointment.ID, model.FieldID, model.TableName)); err != nil {
			return err
		}

		cancelled = appointment.ToCancelled(uuid.NewString(), actor, timezone.Now())

		return s.cancelledRepo.InsertTx(ctx, tx, cancelled)
	})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to cancel appointment")

		return res, err
	}

	metrics.AppointmentsCancelled.WithLabelValues(actor).Inc()
	res.FromModel(cancelled)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CachePrefixStatistics)

		event := model.NewEvent(model.EventCancelled, appointment, cancelled.CancelledAt)
		event.Status = model.StatusRefundPending
		event.Actor = actor
		s.publish(c, event)
	}()

	return res, nil
}

func (s *serviceImpl) GetCancelled(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCancelledAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.GetCancelled")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.SortBy == constant.Empty || req.SortBy == constant.DefaultValueSortBy {
		req.SortBy = model.FieldCancelledAt
	}

	if req.SortDir == constant.Empty {
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.cancelledRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cancelled appointments")

		return res, fmt.Errorf("failed to count cancelled appointments: %w", err)
	}

	models, err := s.cancelledRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cancelled appointments")

		return res, fmt.Errorf("failed to get cancelled appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

// ownedBy limits id to the caller's own appointments unless the caller is an admin.
func ownedBy(ctx context.Context, id string) (gDto.FilterGroup, string, error) {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role == constant.RoleAdmin {
		return filter, model.CancelledByAdmin, nil
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	if email == constant.Empty {
		return filter, constant.Empty, failure.Unauthorized("missing customer identity")
	}

	shared.AppendEq(&filter, model.FieldEmail, email, model.TableName)

	return filter, model.CancelledByCustomer, nil
}

func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Appointment, kafka.Message{
		Key:   event.AppointmentID,
		Value: event,
	})
	if err != nil {
		log.Error().Err(err).Str("event", event.Type).Str("appointmentID", event.AppointmentID).Msg("failed to publish appointment event")
	}
}
