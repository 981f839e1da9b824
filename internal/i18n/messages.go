package i18n

var messages = map[string]map[string]string{
	LocaleZH: {
		"error.admin_create_failed":           "创建管理员失败",
		"error.admin_delete_failed":           "删除管理员失败",
		"error.admin_delete_last_forbidden":   "不能删除最后一个超级管理员",
		"error.admin_delete_self_forbidden":   "不能删除当前登录的管理员",
		"error.admin_fetch_failed":            "获取管理员信息失败",
		"error.admin_id_invalid":              "管理员 ID 无效",
		"error.admin_id_type_invalid":         "管理员 ID 类型错误",
		"error.admin_login_invalid":           "用户名或密码错误",
		"error.admin_not_found":               "管理员不存在",
		"error.admin_username_exists":         "用户名已存在",
		"error.admin_username_invalid":        "用户名需为 3-64 位且不含空白",
		"error.amount_invalid":                "金额无效",
		"error.auth_header_invalid":           "认证头格式错误",
		"error.auth_header_missing":           "缺少认证头",
		"error.authz_fetch_failed":            "获取权限数据失败",
		"error.role_required":                 "角色名不能为空",
		"error.role_reserved":                 "该角色名为系统保留",
		"error.role_immutable":                "预置角色不可删除",
		"error.action_required":               "请求方法不能为空",
		"error.bad_request":                   "请求参数错误",
		"error.captcha_config_invalid":        "验证码配置无效",
		"error.captcha_generate_failed":       "生成验证码失败",
		"error.captcha_invalid":               "验证码错误",
		"error.captcha_required":              "请填写验证码",
		"error.captcha_unavailable":           "验证码服务不可用",
		"error.captcha_verify_failed":         "验证码校验失败",
		"error.cart_empty":                    "购物车为空",
		"error.cart_item_not_found":           "购物车中没有该商品",
		"error.cart_update_failed":            "更新购物车失败",
		"error.guest_session_required":        "请先获取访客会话令牌",
		"error.catalog_code_invalid":          "代码格式无效",
		"error.category_create_failed":        "创建品类失败",
		"error.category_delete_failed":        "删除品类失败",
		"error.category_fetch_failed":         "获取品类失败",
		"error.category_in_use":               "品类下仍有商品",
		"error.category_not_found":            "品类不存在",
		"error.category_update_failed":        "更新品类失败",
		"error.code_exists":                   "代码已存在",
		"error.config_fetch_failed":           "获取配置失败",
		"error.currency_unsupported":          "不支持的币种",
		"error.custom_request_create_failed":  "提交定制需求失败",
		"error.custom_request_fetch_failed":   "获取定制需求失败",
		"error.custom_request_not_found":      "定制需求不存在",
		"error.custom_request_quote_invalid":  "当前状态无法报价",
		"error.custom_request_status_invalid": "定制需求状态流转无效",
		"error.custom_request_update_failed":  "更新定制需求失败",
		"error.email_exists":                  "邮箱已注册",
		"error.email_invalid":                 "邮箱格式错误",
		"error.fandom_create_failed":          "创建作品失败",
		"error.fandom_delete_failed":          "删除作品失败",
		"error.fandom_fetch_failed":           "获取作品失败",
		"error.fandom_in_use":                 "作品下仍有商品",
		"error.fandom_not_found":              "作品不存在",
		"error.fandom_update_failed":          "更新作品失败",
		"error.forbidden":                     "无权访问",
		"error.jwt_secret_missing":            "JWT 密钥未配置",
		"error.login_failed":                  "登录失败",
		"error.login_invalid":                 "邮箱或密码错误",
		"error.login_too_many":                "登录尝试过多，请 %d 秒后重试",
		"error.order_cancel_not_allowed":      "当前订单状态不可取消",
		"error.order_create_failed":           "下单失败",
		"error.order_fetch_failed":            "获取订单失败",
		"error.order_not_found":               "订单不存在",
		"error.order_status_invalid":          "订单状态流转无效",
		"error.order_update_failed":           "更新订单失败",
		"error.password_min_length":           "密码长度至少 %d 位",
		"error.password_old_invalid":          "原密码错误",
		"error.password_require_lower":        "密码需包含小写字母",
		"error.password_require_number":       "密码需包含数字",
		"error.password_require_special":      "密码需包含特殊字符",
		"error.password_require_upper":        "密码需包含大写字母",
		"error.password_weak":                 "密码强度不足",
		"error.product_create_failed":         "创建商品失败",
		"error.product_delete_failed":         "删除商品失败",
		"error.product_fetch_failed":          "获取商品失败",
		"error.product_not_available":         "商品已下架",
		"error.product_not_found":             "商品不存在",
		"error.product_price_invalid":         "商品价格无效",
		"error.product_update_failed":         "更新商品失败",
		"error.profile_empty":                 "没有需要更新的资料",
		"error.purchase_limit_reached":        "该商品每个账号限购一件",
		"error.quantity_invalid":              "数量无效",
		"error.rate_limit_unavailable":        "限流服务不可用",
		"error.rate_limited":                  "请求过于频繁，请 %d 秒后重试",
		"error.register_failed":               "注册失败",
		"error.save_failed":                   "保存失败",
		"error.slug_exists":                   "Slug 已存在",
		"error.stock_insufficient":            "库存不足",
		"error.ticket_create_failed":          "提交工单失败",
		"error.ticket_fetch_failed":           "获取工单失败",
		"error.ticket_not_found":              "工单不存在",
		"error.ticket_status_invalid":         "工单状态流转无效",
		"error.ticket_update_failed":          "更新工单失败",
		"error.token_invalid":                 "登录凭证无效",
		"error.token_revoked":                 "登录已失效，请重新登录",
		"error.unauthorized":                  "未授权",
		"error.user_disabled":                 "账号已被禁用",
		"error.user_fetch_failed":             "获取用户失败",
		"error.user_id_invalid":               "用户 ID 无效",
		"error.user_id_type_invalid":          "用户 ID 类型错误",
		"error.user_not_found":                "用户不存在",
		"error.user_update_failed":            "更新用户失败",
	},
	LocaleEN: {
		"error.admin_create_failed":           "Failed to create admin",
		"error.admin_delete_failed":           "Failed to delete admin",
		"error.admin_delete_last_forbidden":   "The last super admin cannot be deleted",
		"error.admin_delete_self_forbidden":   "You cannot delete yourself",
		"error.admin_fetch_failed":            "Failed to load admin",
		"error.admin_id_invalid":              "Invalid admin ID",
		"error.admin_id_type_invalid":         "Invalid admin ID type",
		"error.admin_login_invalid":           "Invalid username or password",
		"error.admin_not_found":               "Admin not found",
		"error.admin_username_exists":         "Username already exists",
		"error.admin_username_invalid":        "Username must be 3-64 characters without spaces",
		"error.amount_invalid":                "Invalid amount",
		"error.auth_header_invalid":           "Invalid authorization header",
		"error.auth_header_missing":           "Missing authorization header",
		"error.authz_fetch_failed":            "Failed to load permissions",
		"error.role_required":                 "Role is required",
		"error.role_reserved":                 "Role name is reserved",
		"error.role_immutable":                "Builtin roles cannot be deleted",
		"error.action_required":               "Action is required",
		"error.bad_request":                   "Bad request",
		"error.captcha_config_invalid":        "Invalid captcha configuration",
		"error.captcha_generate_failed":       "Failed to generate captcha",
		"error.captcha_invalid":               "Incorrect captcha",
		"error.captcha_required":              "Captcha is required",
		"error.captcha_unavailable":           "Captcha service unavailable",
		"error.captcha_verify_failed":         "Captcha verification failed",
		"error.cart_empty":                    "Your cart is empty",
		"error.cart_item_not_found":           "Item is not in your cart",
		"error.cart_update_failed":            "Failed to update cart",
		"error.guest_session_required":        "Guest session required, call /guest/session first",
		"error.catalog_code_invalid":          "Invalid code format",
		"error.category_create_failed":        "Failed to create category",
		"error.category_delete_failed":        "Failed to delete category",
		"error.category_fetch_failed":         "Failed to load categories",
		"error.category_in_use":               "Category still has products",
		"error.category_not_found":            "Category not found",
		"error.category_update_failed":        "Failed to update category",
		"error.code_exists":                   "Code already exists",
		"error.config_fetch_failed":           "Failed to load configuration",
		"error.currency_unsupported":          "Unsupported currency",
		"error.custom_request_create_failed":  "Failed to submit custom request",
		"error.custom_request_fetch_failed":   "Failed to load custom requests",
		"error.custom_request_not_found":      "Custom request not found",
		"error.custom_request_quote_invalid":  "This request cannot be quoted now",
		"error.custom_request_status_invalid": "Invalid custom request status change",
		"error.custom_request_update_failed":  "Failed to update custom request",
		"error.email_exists":                  "Email is already registered",
		"error.email_invalid":                 "Invalid email address",
		"error.fandom_create_failed":          "Failed to create fandom",
		"error.fandom_delete_failed":          "Failed to delete fandom",
		"error.fandom_fetch_failed":           "Failed to load fandoms",
		"error.fandom_in_use":                 "Fandom still has products",
		"error.fandom_not_found":              "Fandom not found",
		"error.fandom_update_failed":          "Failed to update fandom",
		"error.forbidden":                     "Forbidden",
		"error.jwt_secret_missing":            "JWT secret is not configured",
		"error.login_failed":                  "Login failed",
		"error.login_invalid":                 "Invalid email or password",
		"error.login_too_many":                "Too many login attempts, retry in %d seconds",
		"error.order_cancel_not_allowed":      "This order can no longer be canceled",
		"error.order_create_failed":           "Failed to place order",
		"error.order_fetch_failed":            "Failed to load orders",
		"error.order_not_found":               "Order not found",
		"error.order_status_invalid":          "Invalid order status change",
		"error.order_update_failed":           "Failed to update order",
		"error.password_min_length":           "Password must be at least %d characters",
		"error.password_old_invalid":          "Current password is incorrect",
		"error.password_require_lower":        "Password must contain a lowercase letter",
		"error.password_require_number":       "Password must contain a number",
		"error.password_require_special":      "Password must contain a special character",
		"error.password_require_upper":        "Password must contain an uppercase letter",
		"error.password_weak":                 "Password is too weak",
		"error.product_create_failed":         "Failed to create product",
		"error.product_delete_failed":         "Failed to delete product",
		"error.product_fetch_failed":          "Failed to load products",
		"error.product_not_available":         "Product is not available",
		"error.product_not_found":             "Product not found",
		"error.product_price_invalid":         "Invalid product price",
		"error.product_update_failed":         "Failed to update product",
		"error.profile_empty":                 "Nothing to update",
		"error.purchase_limit_reached":        "This item is limited to one per account",
		"error.quantity_invalid":              "Invalid quantity",
		"error.rate_limit_unavailable":        "Rate limiter unavailable",
		"error.rate_limited":                  "Too many requests, retry in %d seconds",
		"error.register_failed":               "Registration failed",
		"error.save_failed":                   "Failed to save",
		"error.slug_exists":                   "Slug already exists",
		"error.stock_insufficient":            "Not enough stock",
		"error.ticket_create_failed":          "Failed to submit ticket",
		"error.ticket_fetch_failed":           "Failed to load tickets",
		"error.ticket_not_found":              "Ticket not found",
		"error.ticket_status_invalid":         "Invalid ticket status change",
		"error.ticket_update_failed":          "Failed to update ticket",
		"error.token_invalid":                 "Invalid token",
		"error.token_revoked":                 "Session expired, please sign in again",
		"error.unauthorized":                  "Unauthorized",
		"error.user_disabled":                 "Account is disabled",
		"error.user_fetch_failed":             "Failed to load users",
		"error.user_id_invalid":               "Invalid user ID",
		"error.user_id_type_invalid":          "Invalid user ID type",
		"error.user_not_found":                "User not found",
		"error.user_update_failed":            "Failed to update user",
	},
	LocaleTH: {
		"error.admin_create_failed":           "สร้างผู้ดูแลระบบไม่สำเร็จ",
		"error.admin_delete_failed":           "ลบผู้ดูแลระบบไม่สำเร็จ",
		"error.admin_delete_last_forbidden":   "ไม่สามารถลบผู้ดูแลระบบสูงสุดคนสุดท้ายได้",
		"error.admin_delete_self_forbidden":   "ไม่สามารถลบบัญชีของตนเองได้",
		"error.admin_fetch_failed":            "โหลดข้อมูลผู้ดูแลระบบไม่สำเร็จ",
		"error.admin_id_invalid":              "รหัสผู้ดูแลระบบไม่ถูกต้อง",
		"error.admin_id_type_invalid":         "ชนิดรหัสผู้ดูแลระบบไม่ถูกต้อง",
		"error.admin_login_invalid":           "ชื่อผู้ใช้หรือรหัสผ่านไม่ถูกต้อง",
		"error.admin_not_found":               "ไม่พบผู้ดูแลระบบ",
		"error.admin_username_exists":         "ชื่อผู้ใช้นี้มีอยู่แล้ว",
		"error.admin_username_invalid":        "ชื่อผู้ใช้ต้องมี 3-64 ตัวอักษรและไม่มีช่องว่าง",
		"error.amount_invalid":                "จำนวนเงินไม่ถูกต้อง",
		"error.auth_header_invalid":           "รูปแบบส่วนหัวการยืนยันตัวตนไม่ถูกต้อง",
		"error.auth_header_missing":           "ไม่พบส่วนหัวการยืนยันตัวตน",
		"error.authz_fetch_failed":            "โหลดข้อมูลสิทธิ์ไม่สำเร็จ",
		"error.role_required":                 "ต้องระบุบทบาท",
		"error.role_reserved":                 "ชื่อบทบาทนี้ถูกสงวนไว้",
		"error.role_immutable":                "ไม่สามารถลบบทบาทที่ระบบกำหนดไว้",
		"error.action_required":               "ต้องระบุเมธอด",
		"error.bad_request":                   "คำขอไม่ถูกต้อง",
		"error.captcha_config_invalid":        "การตั้งค่าแคปช่าไม่ถูกต้อง",
		"error.captcha_generate_failed":       "สร้างแคปช่าไม่สำเร็จ",
		"error.captcha_invalid":               "แคปช่าไม่ถูกต้อง",
		"error.captcha_required":              "กรุณากรอกแคปช่า",
		"error.captcha_unavailable":           "บริการแคปช่าไม่พร้อมใช้งาน",
		"error.captcha_verify_failed":         "ตรวจสอบแคปช่าไม่สำเร็จ",
		"error.cart_empty":                    "ตะกร้าสินค้าว่างเปล่า",
		"error.cart_item_not_found":           "ไม่พบสินค้านี้ในตะกร้า",
		"error.cart_update_failed":            "อัปเดตตะกร้าไม่สำเร็จ",
		"error.guest_session_required":        "กรุณาขอโทเค็นผู้เยี่ยมชมก่อน",
		"error.catalog_code_invalid":          "รูปแบบรหัสไม่ถูกต้อง",
		"error.category_create_failed":        "สร้างหมวดหมู่ไม่สำเร็จ",
		"error.category_delete_failed":        "ลบหมวดหมู่ไม่สำเร็จ",
		"error.category_fetch_failed":         "โหลดหมวดหมู่ไม่สำเร็จ",
		"error.category_in_use":               "หมวดหมู่นี้ยังมีสินค้าอยู่",
		"error.category_not_found":            "ไม่พบหมวดหมู่",
		"error.category_update_failed":        "อัปเดตหมวดหมู่ไม่สำเร็จ",
		"error.code_exists":                   "รหัสนี้มีอยู่แล้ว",
		"error.config_fetch_failed":           "โหลดการตั้งค่าไม่สำเร็จ",
		"error.currency_unsupported":          "ไม่รองรับสกุลเงินนี้",
		"error.custom_request_create_failed":  "ส่งคำขอสั่งทำไม่สำเร็จ",
		"error.custom_request_fetch_failed":   "โหลดคำขอสั่งทำไม่สำเร็จ",
		"error.custom_request_not_found":      "ไม่พบคำขอสั่งทำ",
		"error.custom_request_quote_invalid":  "ไม่สามารถเสนอราคาคำขอนี้ได้ในขณะนี้",
		"error.custom_request_status_invalid": "การเปลี่ยนสถานะคำขอสั่งทำไม่ถูกต้อง",
		"error.custom_request_update_failed":  "อัปเดตคำขอสั่งทำไม่สำเร็จ",
		"error.email_exists":                  "อีเมลนี้ถูกใช้ลงทะเบียนแล้ว",
		"error.email_invalid":                 "รูปแบบอีเมลไม่ถูกต้อง",
		"error.fandom_create_failed":          "สร้างแฟนด้อมไม่สำเร็จ",
		"error.fandom_delete_failed":          "ลบแฟนด้อมไม่สำเร็จ",
		"error.fandom_fetch_failed":           "โหลดแฟนด้อมไม่สำเร็จ",
		"error.fandom_in_use":                 "แฟนด้อมนี้ยังมีสินค้าอยู่",
		"error.fandom_not_found":              "ไม่พบแฟนด้อม",
		"error.fandom_update_failed":          "อัปเดตแฟนด้อมไม่สำเร็จ",
		"error.forbidden":                     "ไม่มีสิทธิ์เข้าถึง",
		"error.jwt_secret_missing":            "ยังไม่ได้ตั้งค่าคีย์ JWT",
		"error.login_failed":                  "เข้าสู่ระบบไม่สำเร็จ",
		"error.login_invalid":                 "อีเมลหรือรหัสผ่านไม่ถูกต้อง",
		"error.login_too_many":                "พยายามเข้าสู่ระบบบ่อยเกินไป กรุณาลองใหม่ใน %d วินาที",
		"error.order_cancel_not_allowed":      "ไม่สามารถยกเลิกคำสั่งซื้อนี้ได้แล้ว",
		"error.order_create_failed":           "สั่งซื้อไม่สำเร็จ",
		"error.order_fetch_failed":            "โหลดคำสั่งซื้อไม่สำเร็จ",
		"error.order_not_found":               "ไม่พบคำสั่งซื้อ",
		"error.order_status_invalid":          "การเปลี่ยนสถานะคำสั่งซื้อไม่ถูกต้อง",
		"error.order_update_failed":           "อัปเดตคำสั่งซื้อไม่สำเร็จ",
		"error.password_min_length":           "รหัสผ่านต้องมีอย่างน้อย %d ตัวอักษร",
		"error.password_old_invalid":          "รหัสผ่านเดิมไม่ถูกต้อง",
		"error.password_require_lower":        "รหัสผ่านต้องมีตัวพิมพ์เล็ก",
		"error.password_require_number":       "รหัสผ่านต้องมีตัวเลข",
		"error.password_require_special":      "รหัสผ่านต้องมีอักขระพิเศษ",
		"error.password_require_upper":        "รหัสผ่านต้องมีตัวพิมพ์ใหญ่",
		"error.password_weak":                 "รหัสผ่านไม่ปลอดภัยพอ",
		"error.product_create_failed":         "สร้างสินค้าไม่สำเร็จ",
		"error.product_delete_failed":         "ลบสินค้าไม่สำเร็จ",
		"error.product_fetch_failed":          "โหลดสินค้าไม่สำเร็จ",
		"error.product_not_available":         "สินค้านี้ไม่พร้อมจำหน่าย",
		"error.product_not_found":             "ไม่พบสินค้า",
		"error.product_price_invalid":         "ราคาสินค้าไม่ถูกต้อง",
		"error.product_update_failed":         "อัปเดตสินค้าไม่สำเร็จ",
		"error.profile_empty":                 "ไม่มีข้อมูลที่ต้องอัปเดต",
		"error.purchase_limit_reached":        "สินค้านี้จำกัดหนึ่งชิ้นต่อบัญชี",
		"error.quantity_invalid":              "จำนวนไม่ถูกต้อง",
		"error.rate_limit_unavailable":        "ระบบจำกัดอัตราไม่พร้อมใช้งาน",
		"error.rate_limited":                  "ส่งคำขอบ่อยเกินไป กรุณาลองใหม่ใน %d วินาที",
		"error.register_failed":               "ลงทะเบียนไม่สำเร็จ",
		"error.save_failed":                   "บันทึกไม่สำเร็จ",
		"error.slug_exists":                   "Slug นี้มีอยู่แล้ว",
		"error.stock_insufficient":            "สินค้าในสต็อกไม่เพียงพอ",
		"error.ticket_create_failed":          "ส่งคำร้องไม่สำเร็จ",
		"error.ticket_fetch_failed":           "โหลดคำร้องไม่สำเร็จ",
		"error.ticket_not_found":              "ไม่พบคำร้อง",
		"error.ticket_status_invalid":         "การเปลี่ยนสถานะคำร้องไม่ถูกต้อง",
		"error.ticket_update_failed":          "อัปเดตคำร้องไม่สำเร็จ",
		"error.token_invalid":                 "โทเค็นไม่ถูกต้อง",
		"error.token_revoked":                 "เซสชันหมดอายุ กรุณาเข้าสู่ระบบอีกครั้ง",
		"error.unauthorized":                  "ไม่ได้รับอนุญาต",
		"error.user_disabled":                 "บัญชีถูกระงับการใช้งาน",
		"error.user_fetch_failed":             "โหลดผู้ใช้ไม่สำเร็จ",
		"error.user_id_invalid":               "รหัสผู้ใช้ไม่ถูกต้อง",
		"error.user_id_type_invalid":          "ชนิดรหัสผู้ใช้ไม่ถูกต้อง",
		"error.user_not_found":                "ไม่พบผู้ใช้",
		"error.user_update_failed":            "อัปเดตผู้ใช้ไม่สำเร็จ",
	},
}
