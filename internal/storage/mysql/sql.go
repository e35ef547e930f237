package mysql

const upsertHotelSQL = `
INSERT INTO hotels
  (id, name, location, rating, review_count, price, description, amenities, image, lat, lon)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name         = VALUES(name),
  location     = VALUES(location),
  rating       = VALUES(rating),
  review_count = VALUES(review_count),
  price        = VALUES(price),
  description  = VALUES(description),
  amenities    = VALUES(amenities),
  image        = VALUES(image),
  lat          = VALUES(lat),
  lon          = VALUES(lon),
  updated_at   = CURRENT_TIMESTAMP
`

const insertMissSQL = `
INSERT INTO ingest_misses (source, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE http_status = VALUES(http_status), seen_at = CURRENT_TIMESTAMP
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const hotelColumns = `id, name, location, rating, review_count, price, description, amenities, image, lat, lon`

const getHotelSQL = `SELECT ` + hotelColumns + ` FROM hotels WHERE id = ?`

// Catalog order is insertion order; callers sort themselves.
const listHotelsSQL = `SELECT ` + hotelColumns + ` FROM hotels ORDER BY created_at, id`
