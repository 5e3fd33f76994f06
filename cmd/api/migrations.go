// cmd/api/migrations.go

package main

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// runMigrations creates the database schema. Statements are idempotent
// so the server can run them on every start.
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			email VARCHAR(255) UNIQUE,
			phone VARCHAR(20) UNIQUE,
			password_hash VARCHAR(255),
			provider VARCHAR(20) NOT NULL DEFAULT 'local',
			provider_id VARCHAR(255),
			role VARCHAR(20) NOT NULL DEFAULT 'member',
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			is_profile_complete BOOLEAN NOT NULL DEFAULT FALSE,
			is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
			blocked_reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token TEXT NOT NULL,
			refresh_token TEXT NOT NULL UNIQUE,
			device_info TEXT,
			ip_address VARCHAR(45),
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			full_name VARCHAR(100) NOT NULL,
			gender VARCHAR(10) NOT NULL,
			date_of_birth DATE NOT NULL,
			profile_picture TEXT,
			about TEXT,
			height INT,
			marital_status VARCHAR(30),
			education VARCHAR(100),
			profession VARCHAR(100),
			annual_income BIGINT,
			current_city VARCHAR(100),
			current_state VARCHAR(100),
			current_country VARCHAR(100),
			willing_to_relocate BOOLEAN NOT NULL DEFAULT FALSE,
			diet VARCHAR(30),
			smoking VARCHAR(20),
			drinking VARCHAR(20),
			religion VARCHAR(50),
			community VARCHAR(100),
			sub_community VARCHAR(100),
			gotra VARCHAR(100),
			mother_tongue VARCHAR(50),
			preferences JSONB,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_blocked BOOLEAN NOT NULL DEFAULT FALSE,
			is_profile_complete BOOLEAN NOT NULL DEFAULT FALSE,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			last_active TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS horoscopes (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			date_of_birth DATE NOT NULL,
			time_of_birth VARCHAR(5) NOT NULL,
			place_of_birth VARCHAR(150) NOT NULL,
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			rashi VARCHAR(20) NOT NULL,
			nakshatra VARCHAR(30) NOT NULL,
			nakshatra_pada INT NOT NULL,
			manglik BOOLEAN NOT NULL DEFAULT FALSE,
			planets JSONB NOT NULL DEFAULT '{}',
			match_points INT NOT NULL DEFAULT 0,
			kundli_image TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS interests (
			id BIGSERIAL PRIMARY KEY,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			receiver_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			message TEXT,
			match_score INT,
			responded_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (sender_id, receiver_id)
		)`,

		`CREATE TABLE IF NOT EXISTS conversations (
			id BIGSERIAL PRIMARY KEY,
			user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			last_message_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user1_id, user2_id),
			CHECK (user1_id < user2_id)
		)`,

		`CREATE TABLE IF NOT EXISTS messages (
			id BIGSERIAL PRIMARY KEY,
			conversation_id BIGINT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
			sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			read_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(30) NOT NULL,
			title VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			data JSONB NOT NULL DEFAULT '{}',
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			read_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notification_preferences (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			email_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			sms_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			plan_code VARCHAR(20) NOT NULL,
			amount BIGINT NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'INR',
			receipt VARCHAR(64) NOT NULL,
			gateway_order_id VARCHAR(64) NOT NULL UNIQUE,
			gateway_payment_id VARCHAR(64),
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			features TEXT[] NOT NULL DEFAULT '{}',
			refund_amount BIGINT,
			refund_reason TEXT,
			starts_at TIMESTAMPTZ,
			expires_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS subscriptions (
			user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			plan_code VARCHAR(20) NOT NULL,
			payment_id BIGINT NOT NULL REFERENCES payments(id),
			starts_at TIMESTAMPTZ NOT NULL,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_refresh_token ON sessions(refresh_token)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_gender_active ON profiles(gender, is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_last_active ON profiles(last_active)`,
		`CREATE INDEX IF NOT EXISTS idx_interests_receiver ON interests(receiver_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_interests_sender ON interests(sender_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user ON payments(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_subscriptions_expires ON subscriptions(expires_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			log.Printf("migration %d failed", i+1)
			return err
		}
	}

	return nil
}
