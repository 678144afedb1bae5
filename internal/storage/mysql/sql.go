package mysql

// liveStamp is the delete_stamp of rows that were never deleted. Every read
// below filters on it in the WHERE clause.
const liveStamp = "'0001-01-01 00:00:00'"

const homeColumns = `
SELECT
  h.id,
  h.name,
  h.serial_number,
  h.slug,
  h.city_id,
  h.latitude,
  h.longitude,
  h.address,
  h.description,
  h.restaurant,
  h.beach_distance,
  h.rooms_count,
  h.check_in_from,
  h.check_in_to,
  h.check_out_from,
  h.check_out_to,
  h.internet_price,
  h.has_parking,
  h.parking_price
FROM ref_home h
`

const getHomeSQL = homeColumns + `WHERE h.id = ? AND h.delete_stamp = ` + liveStamp

const getHomeBySerialSQL = homeColumns + `WHERE h.serial_number = ? AND h.delete_stamp = ` + liveStamp

const getHomeBySlugSQL = homeColumns + `WHERE h.slug = ? AND h.delete_stamp = ` + liveStamp

// -----------------------------------------------------------------------------
// FACILITIES
// -----------------------------------------------------------------------------

const linkedFacilitiesSQL = `
SELECT f.id, f.category_id, f.name, f.icon, f.is_important
FROM ref_facility f
WHERE f.delete_stamp = ` + liveStamp + `
  AND f.id IN (
    SELECT l.facility_id
    FROM ref_home_lnk_facility l
    WHERE l.home_id = ? AND l.delete_stamp = ` + liveStamp + `
  )
ORDER BY f.name, f.id
`

// facilityCategoriesSQL is completed with an IN list by the repo.
const facilityCategoriesSQL = `
SELECT c.id, c.name
FROM ref_facility_category c
WHERE c.delete_stamp = ` + liveStamp + `
  AND c.id IN `

const facilityCategoriesOrder = ` ORDER BY c.name, c.id`

const countLinkedFacilitiesLikeSQL = `
SELECT COUNT(*)
FROM ref_home_lnk_facility l
JOIN ref_facility f ON f.id = l.facility_id AND f.delete_stamp = ` + liveStamp + `
WHERE l.home_id = ? AND l.delete_stamp = ` + liveStamp + `
  AND f.name LIKE CONCAT('%', ?, '%')
`

// -----------------------------------------------------------------------------
// CARDS, DOCUMENTS, RULES, BRANCHES
// -----------------------------------------------------------------------------

const acceptedCreditCardsSQL = `
SELECT c.name, c.icon
FROM ref_credit_card c
WHERE c.delete_stamp = ` + liveStamp + `
  AND c.id IN (
    SELECT l.card_id
    FROM ref_home_lnk_credit_card l
    WHERE l.home_id = ? AND l.accepted = 1 AND l.delete_stamp = ` + liveStamp + `
  )
ORDER BY c.name
`

// documentNamesSQL takes the home id and one flag condition per list, see
// documentFlags.
const documentNamesSQL = `
SELECT d.name
FROM ref_documents d
WHERE d.delete_stamp = ` + liveStamp + `
  AND d.id IN (
    SELECT l.document_id
    FROM ref_home_lnk_documents l
    WHERE l.home_id = ? AND l.delete_stamp = ` + liveStamp + ` AND %s
  )
ORDER BY d.name
`

const childrenRulesSQL = `
SELECT c.age_from, c.age_to, c.discount_amount, c.discount_measure
FROM ref_home_tbl_children c
WHERE c.home_id = ? AND c.delete_stamp = ` + liveStamp + `
ORDER BY c.age_from, c.age_to
`

const branchesSQL = `
SELECT b.id, b.name
FROM ref_home_branch b
WHERE b.home_id = ? AND b.delete_stamp = ` + liveStamp + `
ORDER BY b.name
`

const monthlyTemperaturesSQL = `
SELECT t.month, t.air_min, t.air_avg, t.air_max, t.water_min, t.water_avg, t.water_max, t.update_stamp
FROM reg_temperature_month t
WHERE t.city_id = ? AND t.delete_stamp = ` + liveStamp + `
ORDER BY t.month ASC, t.update_stamp DESC
`

// -----------------------------------------------------------------------------
// PAID FACILITIES, PROGRAMS, THERAPY
// -----------------------------------------------------------------------------

const paidFacilitiesSQL = `
SELECT p.id, p.name, p.short, p.description, p.price_amount, p.price_unit
FROM ref_home_facility p
WHERE p.home_id = ? AND p.delete_stamp = ` + liveStamp + `
ORDER BY p.name
`

const treatmentProgramsSQL = `
SELECT
  p.id,
  p.name_public,
  p.description,
  p.min_booking_days,
  p.recommended_booking_days,
  p.max_booking_days,
  p.min_age,
  p.max_age,
  p.require_health_card,
  p.require_analysis_age,
  p.min_pregnant_stage,
  p.what_gives_program,
  p.whom,
  p.goal,
  p.contraindications,
  p.price
FROM ref_home_treatment_program p
WHERE p.home_id = ? AND p.delete_stamp = ` + liveStamp + `
ORDER BY p.name_public
`

const therapyProceduresSQL = `
SELECT t.id, t.name, t.description, t.image_base_url, t.image_path
FROM ref_home_therapy t
WHERE t.home_id = ? AND t.delete_stamp = ` + liveStamp + `
ORDER BY t.name
`

const therapyProfilesSQL = `
SELECT d.id, d.name
FROM ref_disease d
WHERE d.delete_stamp = ` + liveStamp + `
  AND d.id IN (
    SELECT l.disease_id
    FROM ref_home_lnk_disease l
    WHERE l.home_id = ? AND l.delete_stamp = ` + liveStamp + `
  )
ORDER BY d.name
`

// -----------------------------------------------------------------------------
// PROVIDERS: GALLERY, GRADES
// -----------------------------------------------------------------------------

const imagesSQL = `
SELECT i.base_url, i.path
FROM ref_photo i
JOIN ref_photo_category c ON c.id = i.category_id AND c.delete_stamp = ` + liveStamp + `
WHERE c.entity_id = ? AND i.delete_stamp = ` + liveStamp + `
ORDER BY i.sort, i.id
`

const gradeSQL = `
SELECT COALESCE(ROUND(AVG(o.score), 2), 0), COUNT(*)
FROM home_opinion o
WHERE o.home_id = ? AND o.delete_stamp = ` + liveStamp + `
`

// -----------------------------------------------------------------------------
// PRICING
// -----------------------------------------------------------------------------

const getProductSQL = `
SELECT p.id, p.pricegroup_id, p.price
FROM ref_product p
WHERE p.id = ? AND p.delete_stamp = ` + liveStamp + `
`

const guestPriceSQL = `
SELECT pp.price
FROM ref_product_price pp
WHERE pp.product_id = ? AND pp.delete_stamp = ` + liveStamp + `
`

const partnerDiscountSQL = `
SELECT d.percent
FROM ref_partner_discount d
WHERE d.pricegroup_id = ? AND d.partner_id = ? AND d.delete_stamp = ` + liveStamp + `
`

const viewerBySessionSQL = `
SELECT p.id, pt.percent
FROM user_session s
JOIN app_user u ON u.id = s.user_id AND u.delete_stamp = ` + liveStamp + `
LEFT JOIN ref_partner p ON p.id = u.partner_id AND p.delete_stamp = ` + liveStamp + `
LEFT JOIN ref_price_type pt ON pt.id = p.price_type_id AND pt.delete_stamp = ` + liveStamp + `
WHERE s.id = ? AND s.delete_stamp = ` + liveStamp + `
`
