package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database.
// These run on startup to ensure tables exist.
// Prices and limits are stored as decimal strings, never floats.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    emoji TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS subscriptions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    provider_id TEXT NOT NULL DEFAULT '',
    price TEXT NOT NULL,
    currency TEXT NOT NULL,
    billing TEXT NOT NULL,
    next_charge INTEGER NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    paused INTEGER NOT NULL DEFAULT 0,
    familial INTEGER NOT NULL DEFAULT 0,
    payment_mode TEXT NOT NULL DEFAULT '',
    rotation_index INTEGER,
    rotation_start INTEGER,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS subscription_participants (
    subscription_id TEXT NOT NULL,
    member_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    share INTEGER,
    PRIMARY KEY (subscription_id, member_id),
    FOREIGN KEY (subscription_id) REFERENCES subscriptions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rotation_members (
    subscription_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    member_id TEXT NOT NULL,
    PRIMARY KEY (subscription_id, position),
    FOREIGN KEY (subscription_id) REFERENCES subscriptions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS rotation_overrides (
    subscription_id TEXT NOT NULL,
    month TEXT NOT NULL,
    member_id TEXT NOT NULL,
    PRIMARY KEY (subscription_id, month),
    FOREIGN KEY (subscription_id) REFERENCES subscriptions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payment_history (
    subscription_id TEXT NOT NULL,
    month TEXT NOT NULL,
    paid_by TEXT NOT NULL,
    PRIMARY KEY (subscription_id, month),
    FOREIGN KEY (subscription_id) REFERENCES subscriptions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS budgets (
    id TEXT PRIMARY KEY,
    category TEXT NOT NULL DEFAULT '',
    monthly_limit TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    sender_id TEXT NOT NULL DEFAULT '',
    recipient_id TEXT NOT NULL,
    subscription_id TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    type TEXT NOT NULL,
    read INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS friendships (
    id TEXT PRIMARY KEY,
    requester_id TEXT NOT NULL,
    addressee_id TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    UNIQUE (requester_id, addressee_id)
);

CREATE TABLE IF NOT EXISTS subscription_invitations (
    id TEXT PRIMARY KEY,
    subscription_id TEXT NOT NULL,
    inviter_id TEXT NOT NULL,
    invitee_id TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    responded_at INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_participants_subscription ON subscription_participants(subscription_id);
CREATE INDEX IF NOT EXISTS idx_participants_member ON subscription_participants(member_id);
CREATE INDEX IF NOT EXISTS idx_history_subscription ON payment_history(subscription_id);
CREATE INDEX IF NOT EXISTS idx_messages_recipient ON messages(recipient_id, read);
CREATE INDEX IF NOT EXISTS idx_friendships_requester ON friendships(requester_id);
CREATE INDEX IF NOT EXISTS idx_friendships_addressee ON friendships(addressee_id);
CREATE INDEX IF NOT EXISTS idx_invitations_invitee ON subscription_invitations(invitee_id, status);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
