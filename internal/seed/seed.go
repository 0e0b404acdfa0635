// Package seed carries the demo fixture set: one admin, five doctors,
// eight patients, a week of appointments, a message thread and a
// diagnosis record. Loaded into the memory backend on startup when
// DEMO_DATA is on, or into Postgres via scripts/seed.go.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/auth"
)

// Stores groups the repositories the seed loads into
type Stores struct {
	Users         repositories.UserRepository
	Appointments  repositories.AppointmentRepository
	Messages      repositories.MessageRepository
	Notifications repositories.NotificationRepository
	Diagnoses     repositories.DiagnosisRepository
}

type demoUser struct {
	id             string
	email          string
	password       string
	name           string
	role           entities.UserRole
	doctorStatus   entities.DoctorStatus
	specialization string
	phone          string
	bio            string
	clinicLocation string
}

var demoUsers = []demoUser{
	{
		id:       "admin1",
		email:    "admin@clinic.com",
		password: "123456",
		name:     "Admin User",
		role:     entities.RoleAdmin,
	},
	{
		id:             "doctor1",
		email:          "john@clinic.com",
		password:       "john123",
		name:           "Dr. John Smith",
		role:           entities.RoleDoctor,
		doctorStatus:   entities.DoctorStatusApproved,
		specialization: "Cardiology",
		phone:          "123-456-7890",
		bio:            "Experienced cardiologist with over 15 years of practice. Specialized in heart disease prevention and treatment. Board certified in cardiovascular medicine.",
		clinicLocation: "Building A, Floor 2, Room 201 - Main Clinic",
	},
	{
		id:             "doctor2",
		email:          "sarah@clinic.com",
		password:       "sarah123",
		name:           "Dr. Sarah Johnson",
		role:           entities.RoleDoctor,
		doctorStatus:   entities.DoctorStatusApproved,
		specialization: "Pediatrics",
		phone:          "234-567-8901",
		bio:            "Dedicated pediatrician with a passion for children's health. Over 12 years of experience in treating infants, children, and adolescents. Specializes in preventive care and developmental issues.",
		clinicLocation: "Building B, Floor 1, Room 105 - Children's Wing",
	},
	{
		id:             "doctor3",
		email:          "michael@clinic.com",
		password:       "michael123",
		name:           "Dr. Michael Brown",
		role:           entities.RoleDoctor,
		doctorStatus:   entities.DoctorStatusApproved,
		specialization: "Neurology",
		phone:          "345-678-9012",
		bio:            "Board-certified neurologist specializing in brain and nervous system disorders. Expert in treating migraines, epilepsy, and neurological conditions. 18 years of clinical experience.",
		clinicLocation: "Building A, Floor 3, Room 305 - Neurology Department",
	},
	{
		id:             "doctor4",
		email:          "emily@clinic.com",
		password:       "emily123",
		name:           "Dr. Emily Davis",
		role:           entities.RoleDoctor,
		doctorStatus:   entities.DoctorStatusApproved,
		specialization: "Dermatology",
		phone:          "456-789-0123",
		bio:            "Expert dermatologist with focus on skin health, cosmetic dermatology, and treatment of skin conditions. Certified in advanced dermatological procedures. 10 years of practice.",
		clinicLocation: "Building C, Floor 1, Room 110 - Dermatology Clinic",
	},
	{
		id:             "doctor5",
		email:          "robert@clinic.com",
		password:       "robert123",
		name:           "Dr. Robert Wilson",
		role:           entities.RoleDoctor,
		doctorStatus:   entities.DoctorStatusApproved,
		specialization: "Surgery",
		phone:          "567-890-1234",
		bio:            "Renowned surgeon with expertise in general and minimally invasive surgery. Over 20 years of surgical experience. Performed thousands of successful procedures.",
		clinicLocation: "Building A, Floor 4, Room 401 - Surgical Wing",
	},
	{id: "patient1", email: "jane@email.com", password: "jane123", name: "Jane Doe", role: entities.RolePatient, phone: "987-654-3210"},
	{id: "patient2", email: "robert@email.com", password: "robert456", name: "Robert Wilson", role: entities.RolePatient, phone: "876-543-2109"},
	{id: "patient3", email: "maria@email.com", password: "maria123", name: "Maria Garcia", role: entities.RolePatient, phone: "765-432-1098"},
	{id: "patient4", email: "david@email.com", password: "david123", name: "David Lee", role: entities.RolePatient, phone: "654-321-0987"},
	{id: "patient5", email: "lisa@email.com", password: "lisa123", name: "Lisa Anderson", role: entities.RolePatient, phone: "543-210-9876"},
	{id: "patient6", email: "james@email.com", password: "james123", name: "James Miller", role: entities.RolePatient, phone: "432-109-8765"},
	{id: "patient7", email: "susan@email.com", password: "susan123", name: "Susan Taylor", role: entities.RolePatient, phone: "321-098-7654"},
	{id: "patient8", email: "thomas@email.com", password: "thomas123", name: "Thomas Moore", role: entities.RolePatient, phone: "210-987-6543"},
}

type demoAppointment struct {
	id          string
	patientID   string
	patientName string
	doctorID    string
	doctorName  string
	date        string
	time        string
	status      entities.AppointmentStatus
	reason      string
	notes       string
}

var demoAppointments = []demoAppointment{
	{id: "apt1", patientID: "patient1", patientName: "Jane Doe", doctorID: "doctor1", doctorName: "Dr. John Smith", date: "2025-12-20", time: "10:00", status: entities.AppointmentStatusScheduled, reason: "Regular checkup"},
	{id: "apt2", patientID: "patient2", patientName: "Robert Wilson", doctorID: "doctor1", doctorName: "Dr. John Smith", date: "2025-12-18", time: "14:00", status: entities.AppointmentStatusCompleted, reason: "Heart examination", notes: "Patient is in good condition"},
	{id: "apt3", patientID: "patient3", patientName: "Maria Garcia", doctorID: "doctor2", doctorName: "Dr. Sarah Johnson", date: "2025-12-19", time: "11:00", status: entities.AppointmentStatusCompleted, reason: "Child checkup"},
	{id: "apt4", patientID: "patient1", patientName: "Jane Doe", doctorID: "doctor2", doctorName: "Dr. Sarah Johnson", date: "2025-12-22", time: "09:00", status: entities.AppointmentStatusScheduled, reason: "Pediatric consultation"},
	{id: "apt5", patientID: "patient2", patientName: "Robert Wilson", doctorID: "doctor3", doctorName: "Dr. Michael Brown", date: "2025-12-21", time: "15:00", status: entities.AppointmentStatusScheduled, reason: "Neurological consultation"},
	{id: "apt6", patientID: "patient4", patientName: "David Lee", doctorID: "doctor1", doctorName: "Dr. John Smith", date: "2025-12-17", time: "16:00", status: entities.AppointmentStatusCompleted, reason: "Cardiac checkup"},
	{id: "apt7", patientID: "patient5", patientName: "Lisa Anderson", doctorID: "doctor4", doctorName: "Dr. Emily Davis", date: "2025-12-23", time: "10:00", status: entities.AppointmentStatusScheduled, reason: "Skin consultation"},
	{id: "apt8", patientID: "patient3", patientName: "Maria Garcia", doctorID: "doctor3", doctorName: "Dr. Michael Brown", date: "2025-12-24", time: "14:00", status: entities.AppointmentStatusScheduled, reason: "Neurological follow-up"},
}

// Load inserts the demo fixtures. Passwords are bcrypt-hashed at load
// time, so it takes a moment.
func Load(ctx context.Context, stores Stores) error {
	now := time.Now()

	for _, du := range demoUsers {
		hash, err := auth.HashPassword(du.password)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		user := &entities.User{
			ID:             du.id,
			Email:          du.email,
			PasswordHash:   hash,
			Name:           du.name,
			Role:           du.role,
			DoctorStatus:   du.doctorStatus,
			Specialization: du.specialization,
			Phone:          du.phone,
			Bio:            du.bio,
			ClinicLocation: du.clinicLocation,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := stores.Users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", du.id, err)
		}
	}

	for _, da := range demoAppointments {
		appointment := &entities.Appointment{
			ID:          da.id,
			PatientID:   da.patientID,
			PatientName: da.patientName,
			DoctorID:    da.doctorID,
			DoctorName:  da.doctorName,
			Date:        da.date,
			Time:        da.time,
			Status:      da.status,
			Reason:      da.reason,
			Notes:       da.notes,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := stores.Appointments.Create(ctx, appointment); err != nil {
			return fmt.Errorf("failed to seed appointment %s: %w", da.id, err)
		}
	}

	for _, message := range demoMessages(now) {
		if err := stores.Messages.Create(ctx, message); err != nil {
			return fmt.Errorf("failed to seed message %s: %w", message.ID, err)
		}
	}

	for _, notification := range demoNotifications(now) {
		if err := stores.Notifications.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to seed notification %s: %w", notification.ID, err)
		}
	}

	for _, diagnosis := range demoDiagnoses(now) {
		if err := stores.Diagnoses.Create(ctx, diagnosis); err != nil {
			return fmt.Errorf("failed to seed diagnosis %s: %w", diagnosis.ID, err)
		}
	}

	return nil
}

func demoMessages(now time.Time) []*entities.Message {
	return []*entities.Message{
		{
			ID:           "msg_1",
			SenderID:     "doctor1",
			SenderName:   "Dr. John Smith",
			ReceiverID:   "patient1",
			ReceiverName: "Jane Doe",
			Content:      "Hello, I wanted to follow up on your recent appointment. How are you feeling?",
			Timestamp:    now.Add(-2 * 24 * time.Hour),
			Read:         false,
		},
		{
			ID:           "msg_2",
			SenderID:     "patient1",
			SenderName:   "Jane Doe",
			ReceiverID:   "doctor1",
			ReceiverName: "Dr. John Smith",
			Content:      "Thank you for checking in! I'm feeling much better now.",
			Timestamp:    now.Add(-24 * time.Hour),
			Read:         true,
		},
		{
			ID:           "msg_3",
			SenderID:     "doctor1",
			SenderName:   "Dr. John Smith",
			ReceiverID:   "patient1",
			ReceiverName: "Jane Doe",
			Content:      "That's great to hear! Please continue taking your medication as prescribed.",
			Timestamp:    now.Add(-12 * time.Hour),
			Read:         false,
		},
	}
}

func demoNotifications(now time.Time) []*entities.Notification {
	return []*entities.Notification{
		{
			ID:        "notif_1",
			UserID:    "patient1",
			Title:     "Appointment Reminder",
			Message:   "You have an appointment with Dr. John Smith tomorrow at 10:00 AM",
			Type:      entities.NotificationTypeAppointment,
			Read:      false,
			Timestamp: now.Add(-24 * time.Hour),
			Link:      "/patient-dashboard?tab=appointments",
		},
		{
			ID:        "notif_2",
			UserID:    "patient1",
			Title:     "New Message",
			Message:   "You have a new message from Dr. John Smith",
			Type:      entities.NotificationTypeMessage,
			Read:      false,
			Timestamp: now.Add(-12 * time.Hour),
			Link:      "/patient-dashboard?tab=messages",
		},
		{
			ID:        "notif_3",
			UserID:    "patient1",
			Title:     "Diagnosis Updated",
			Message:   "Dr. John Smith has updated your diagnosis",
			Type:      entities.NotificationTypeDiagnosis,
			Read:      true,
			Timestamp: now.Add(-3 * 24 * time.Hour),
			Link:      "/patient-dashboard?tab=diagnosis",
		},
		{
			ID:        "notif_4",
			UserID:    "doctor1",
			Title:     "New Appointment",
			Message:   "Jane Doe has booked a new appointment for tomorrow",
			Type:      entities.NotificationTypeAppointment,
			Read:      false,
			Timestamp: now.Add(-2 * 24 * time.Hour),
			Link:      "/doctor-dashboard?tab=appointments",
		},
		{
			ID:        "notif_5",
			UserID:    "doctor1",
			Title:     "New Message",
			Message:   "You have a new message from Jane Doe",
			Type:      entities.NotificationTypeMessage,
			Read:      true,
			Timestamp: now.Add(-24 * time.Hour),
			Link:      "/doctor-dashboard?tab=messages",
		},
	}
}

func demoDiagnoses(now time.Time) []*entities.Diagnosis {
	return []*entities.Diagnosis{
		{
			ID:            "diag_1",
			PatientID:     "patient1",
			PatientName:   "Jane Doe",
			DoctorID:      "doctor1",
			DoctorName:    "Dr. John Smith",
			AppointmentID: "apt_1",
			Diagnosis:     "Mild hypertension with elevated blood pressure readings. Patient shows signs of stress-related cardiovascular response.",
			Disease:       "Hypertension (Stage 1)",
			Notes:         "Patient should monitor blood pressure daily. Recommended lifestyle changes including reduced sodium intake and regular exercise. Follow-up appointment scheduled in 2 weeks.",
			TestResults:   "Blood Pressure: 145/95 mmHg\nHeart Rate: 78 bpm\nECG: Normal sinus rhythm\nBlood Tests: All within normal range",
			Prescription:  "1. Lisinopril 10mg - Take once daily in the morning\n2. Aspirin 81mg - Take once daily with food\n3. Follow up in 2 weeks for blood pressure check",
			CreatedAt:     now.Add(-5 * 24 * time.Hour),
			UpdatedAt:     now.Add(-5 * 24 * time.Hour),
		},
	}
}
