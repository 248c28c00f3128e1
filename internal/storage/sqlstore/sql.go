package sqlstore

var mysqlSchema = []string{`
CREATE TABLE IF NOT EXISTS properties (
  id           BIGINT AUTO_INCREMENT PRIMARY KEY,
  location     VARCHAR(128) NOT NULL,
  sqft         DOUBLE       NOT NULL,
  bath         INT          NOT NULL,
  bhk          INT          NOT NULL,
  listed_price DOUBLE       NOT NULL,
  image        VARCHAR(255) NULL,
  INDEX idx_properties_location (location),
  INDEX idx_properties_price (listed_price)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`, `
CREATE TABLE IF NOT EXISTS inquiries (
  id          BIGINT AUTO_INCREMENT PRIMARY KEY,
  property_id BIGINT       NOT NULL,
  name        VARCHAR(255) NOT NULL,
  phone       VARCHAR(64)  NOT NULL,
  message     TEXT         NOT NULL,
  INDEX idx_inquiries_property (property_id),
  CONSTRAINT fk_inquiries_property FOREIGN KEY (property_id) REFERENCES properties (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS properties (
  id           INTEGER PRIMARY KEY AUTOINCREMENT,
  location     TEXT    NOT NULL,
  sqft         REAL    NOT NULL,
  bath         INTEGER NOT NULL,
  bhk          INTEGER NOT NULL,
  listed_price REAL    NOT NULL,
  image        TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties (location)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties (listed_price)`, `
CREATE TABLE IF NOT EXISTS inquiries (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  property_id INTEGER NOT NULL REFERENCES properties (id),
  name        TEXT    NOT NULL,
  phone       TEXT    NOT NULL,
  message     TEXT    NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_inquiries_property ON inquiries (property_id)`,
}

var postgresSchema = []string{`
CREATE TABLE IF NOT EXISTS properties (
  id           BIGSERIAL PRIMARY KEY,
  location     TEXT             NOT NULL,
  sqft         DOUBLE PRECISION NOT NULL,
  bath         INTEGER          NOT NULL,
  bhk          INTEGER          NOT NULL,
  listed_price DOUBLE PRECISION NOT NULL,
  image        TEXT
)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_location ON properties (location)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties (listed_price)`, `
CREATE TABLE IF NOT EXISTS inquiries (
  id          BIGSERIAL PRIMARY KEY,
  property_id BIGINT NOT NULL REFERENCES properties (id),
  name        TEXT   NOT NULL,
  phone       TEXT   NOT NULL,
  message     TEXT   NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_inquiries_property ON inquiries (property_id)`,
}

const listingColumns = "id, location, sqft, bath, bhk, listed_price, image"

const getListingSQL = "SELECT " + listingColumns + " FROM properties WHERE id = %s"

const allListingsSQL = "SELECT " + listingColumns + " FROM properties ORDER BY id"

const distinctLocationsSQL = "SELECT DISTINCT location FROM properties ORDER BY location"

const countListingsSQL = "SELECT COUNT(*) FROM properties"

const insertListingSQL = `
INSERT INTO properties (location, sqft, bath, bhk, listed_price, image)
VALUES (%s, %s, %s, %s, %s, %s)`

const insertInquirySQL = `
INSERT INTO inquiries (property_id, name, phone, message)
VALUES (%s, %s, %s, %s)`

// Newest inquiry first, each joined with the listing it refers to.
const listInquiriesSQL = `
SELECT
  i.id,
  i.property_id,
  i.name,
  i.phone,
  i.message,
  p.location,
  p.sqft,
  p.bhk,
  p.bath,
  p.listed_price
FROM inquiries i
JOIN properties p ON p.id = i.property_id
ORDER BY i.id DESC
`
